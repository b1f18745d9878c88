package formtree_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPhoto_AttachStoresDataURL(t *testing.T) {
	tree := newTree()
	field, _ := tree.InsertNew(formtree.Root(), 0, "photo")

	err := tree.AttachPhoto(field.UID, formtree.File{Name: "avatar.png", Data: pngHeader})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if !strings.HasPrefix(field.Photo.UploadedPhoto, "data:image/png;base64,") {
		t.Fatalf("unexpected data url %q", field.Photo.UploadedPhoto)
	}
	if field.Photo.PhotoName != "avatar.png" || field.Photo.PhotoSize != "16 B" {
		t.Fatalf("unexpected metadata: %+v", field.Photo)
	}
	if !field.Photo.HasUpload() {
		t.Fatalf("expected HasUpload")
	}

	if err := tree.DetachPhoto(field.UID); err != nil {
		t.Fatalf("detach: %v", err)
	}
	want := &model.Photo{AcceptedTypes: model.DefaultPhotoAcceptedTypes, MaxSize: model.DefaultPhotoMaxSize}
	if diff := cmp.Diff(want, field.Photo); diff != "" {
		t.Fatalf("detach should keep only constraints (-want +got):\n%s", diff)
	}
}

func TestPhoto_RejectionsLeaveFieldUnchanged(t *testing.T) {
	tree := newTree()
	field, _ := tree.InsertNew(formtree.Root(), 0, "photo")
	field.Photo.MaxSize = 0.001
	before := field.Clone()

	tooLarge := formtree.File{Name: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte{1}, 2048)}
	err := tree.AttachPhoto(field.UID, tooLarge)
	var photoErr *formtree.PhotoError
	if !errors.As(err, &photoErr) || photoErr.Kind != formtree.PhotoTooLarge {
		t.Fatalf("expected too large error, got %v", err)
	}

	field.Photo.MaxSize = 5
	before.Photo.MaxSize = 5
	wrongType := formtree.File{Name: "notes.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
	err = tree.AttachPhoto(field.UID, wrongType)
	if !errors.As(err, &photoErr) || photoErr.Kind != formtree.PhotoTypeRejected {
		t.Fatalf("expected type rejected error, got %v", err)
	}

	if diff := cmp.Diff(before, field); diff != "" {
		t.Fatalf("rejected uploads must not change the field (-want +got):\n%s", diff)
	}
}

func TestPhoto_RequiresPhotoField(t *testing.T) {
	tree := newTree()
	field, _ := tree.InsertNew(formtree.Root(), 0, "text")
	if err := tree.AttachPhoto(field.UID, formtree.File{Name: "a.png", Data: pngHeader}); !errors.Is(err, formtree.ErrNotPhoto) {
		t.Fatalf("expected ErrNotPhoto, got %v", err)
	}
	if err := tree.DetachPhoto("missing"); !errors.Is(err, formtree.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestAcceptsType(t *testing.T) {
	cases := []struct {
		accepted  string
		mediaType string
		fileName  string
		want      bool
	}{
		{"image/*", "image/jpeg", "a.jpg", true},
		{"image/*", "application/pdf", "a.pdf", false},
		{"image/png, image/gif", "image/gif", "a.gif", true},
		{"image/png", "image/jpeg", "a.jpg", false},
		{".heic,.heif", "", "IMG_0001.HEIC", true},
		{"*/*", "application/zip", "a.zip", true},
		{" , ", "image/png", "a.png", false},
	}
	for _, tc := range cases {
		if got := formtree.AcceptsType(tc.accepted, tc.mediaType, tc.fileName); got != tc.want {
			t.Fatalf("AcceptsType(%q, %q, %q) = %v, want %v", tc.accepted, tc.mediaType, tc.fileName, got, tc.want)
		}
	}
}

func TestFile_MediaType(t *testing.T) {
	if got := (formtree.File{ContentType: "image/jpeg; charset=binary"}).MediaType(); got != "image/jpeg" {
		t.Fatalf("declared type: got %q", got)
	}
	if got := (formtree.File{Name: "scan.png"}).MediaType(); got != "image/png" {
		t.Fatalf("extension type: got %q", got)
	}
	if got := (formtree.File{Name: "blob", Data: pngHeader}).MediaType(); got != "image/png" {
		t.Fatalf("sniffed type: got %q", got)
	}
}

func TestValidatePhoto_DefaultLimit(t *testing.T) {
	file := formtree.File{Name: "x.png", ContentType: "image/png", Data: make([]byte, 5*1024*1024+1)}
	err := formtree.ValidatePhoto(model.Photo{}, file)
	var photoErr *formtree.PhotoError
	if !errors.As(err, &photoErr) || photoErr.Kind != formtree.PhotoTooLarge {
		t.Fatalf("expected default 5MB limit to apply, got %v", err)
	}
}

func TestValidatePhoto_MessageUsesBinaryUnits(t *testing.T) {
	file := formtree.File{Name: "x.png", ContentType: "image/png", Data: make([]byte, 3*512*1024)}
	err := formtree.ValidatePhoto(model.Photo{MaxSize: 1}, file)
	var photoErr *formtree.PhotoError
	if !errors.As(err, &photoErr) {
		t.Fatalf("expected a PhotoError, got %v", err)
	}
	want := "file is 1.5 MiB, the limit is 1.0 MiB"
	if diff := cmp.Diff(want, photoErr.Message); diff != "" {
		t.Fatalf("message mismatch (-want +got):\n%s", diff)
	}
}
