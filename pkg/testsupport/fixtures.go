package testsupport

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	pkgmodel "github.com/goliatone/go-formbuilder/pkg/model"
)

// FixedTime is the clock reading used by DeterministicFactory.
var FixedTime = time.UnixMilli(1767206578220)

// DeterministicFactory returns a factory whose uids and names are derived from
// a counter so fixtures stay stable across runs.
func DeterministicFactory() pkgmodel.Factory {
	var counter uint64
	return pkgmodel.NewFactory(
		pkgmodel.WithClock(func() time.Time { return FixedTime }),
		pkgmodel.WithEntropy(func() uuid.UUID {
			counter++
			var id uuid.UUID
			binary.BigEndian.PutUint64(id[:8], counter*7919)
			binary.BigEndian.PutUint64(id[8:], counter*104729)
			return id
		}),
	)
}

// LoadFields reads a JSON or YAML fixture into a field list, returning an error
// for callers managing setup outside of *testing.T.
func LoadFields(path string) ([]*pkgmodel.Field, error) {
	if path == "" {
		return nil, errors.New("testsupport: fields path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fields: %w", err)
	}
	fields, err := codec.Decode(codec.FormatFromPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode fields: %w", err)
	}
	return fields, nil
}

// MustLoadFields loads a fixture and fails the test on error.
func MustLoadFields(t *testing.T, path string) []*pkgmodel.Field {
	t.Helper()

	fields, err := LoadFields(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return fields
}

// CompareFields returns a diff between two trees, treating nil and empty lists
// as equal.
func CompareFields(want, got []*pkgmodel.Field) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
