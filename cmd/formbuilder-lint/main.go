package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-formbuilder/pkg/loader"
	"github.com/goliatone/go-formbuilder/pkg/palette"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint exported form definitions for structural problems.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"pkg/builder/sample.json"}
	}

	ctx := context.Background()
	l := loader.New()
	registry := palette.Default()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, l, registry, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, l *loader.Loader, registry *palette.Registry, path string) ([]violation, error) {
	fields, err := l.LoadFields(ctx, loader.SourceFromFile(path))
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	result := validation.ValidateForm(ctx, fields, validation.Options{Palette: registry})
	violations := make([]violation, 0, len(result.Issues))
	for _, issue := range result.Issues {
		location := issue.Path
		if issue.UID != "" {
			location += " (" + issue.UID + ")"
		}
		violations = append(violations, violation{file: path, location: location, message: issue.Message})
	}
	return violations, nil
}
