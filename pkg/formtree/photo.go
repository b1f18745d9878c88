package formtree

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const megabyte = 1024 * 1024

// File is an uploaded image handed to AttachPhoto.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// MediaType returns the declared content type, falling back to the file
// extension and finally to content sniffing.
func (f File) MediaType() string {
	if ct := strings.TrimSpace(f.ContentType); ct != "" {
		if parsed, _, err := mime.ParseMediaType(ct); err == nil {
			return parsed
		}
		return strings.ToLower(ct)
	}
	if byExt := mime.TypeByExtension(filepath.Ext(f.Name)); byExt != "" {
		if parsed, _, err := mime.ParseMediaType(byExt); err == nil {
			return parsed
		}
	}
	if len(f.Data) > 0 {
		sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(f.Data))
		return sniffed
	}
	return ""
}

// AttachPhoto validates file against the photo field's constraints and, when
// it passes, stores it as a data URL together with its display metadata. A
// rejected file leaves the field unchanged and yields a *PhotoError.
func (t *Tree) AttachPhoto(uid string, file File) error {
	field, err := t.photo(uid)
	if err != nil {
		return err
	}
	constraints := model.Photo{MaxSize: model.DefaultPhotoMaxSize}
	if field.Photo != nil {
		constraints = *field.Photo
	}
	if err := ValidatePhoto(constraints, file); err != nil {
		t.logger.Debug("photo rejected", zap.String("uid", uid), zap.Error(err))
		return err
	}

	mediaType := file.MediaType()
	if field.Photo == nil {
		field.Photo = &model.Photo{MaxSize: model.DefaultPhotoMaxSize}
	}
	field.Photo.UploadedPhoto = "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
	field.Photo.PhotoName = file.Name
	field.Photo.PhotoSize = humanize.IBytes(uint64(len(file.Data)))
	return nil
}

// DetachPhoto clears the stored image and its metadata, keeping the upload
// constraints. Callers are expected to confirm first.
func (t *Tree) DetachPhoto(uid string) error {
	field, err := t.photo(uid)
	if err != nil {
		return err
	}
	if field.Photo == nil {
		return nil
	}
	field.Photo.UploadedPhoto = ""
	field.Photo.PhotoName = ""
	field.Photo.PhotoSize = ""
	return nil
}

// ValidatePhoto checks file against the size limit (megabytes, default 5) and
// the comma separated accepted type list of constraints.
func ValidatePhoto(constraints model.Photo, file File) error {
	limit := constraints.MaxSize
	if limit <= 0 {
		limit = model.DefaultPhotoMaxSize
	}
	if size := float64(len(file.Data)); size > limit*megabyte {
		return &PhotoError{
			Kind:    PhotoTooLarge,
			File:    file.Name,
			Message: fmt.Sprintf("file is %s, the limit is %s", humanize.IBytes(uint64(len(file.Data))), humanize.IBytes(uint64(limit*megabyte))),
		}
	}

	accepted := strings.TrimSpace(constraints.AcceptedTypes)
	if accepted == "" {
		return nil
	}
	mediaType := file.MediaType()
	if !AcceptsType(accepted, mediaType, file.Name) {
		return &PhotoError{
			Kind:    PhotoTypeRejected,
			File:    file.Name,
			Message: fmt.Sprintf("type %q is not one of %s", mediaType, accepted),
		}
	}
	return nil
}

// AcceptsType matches a media type against an accept list such as
// "image/png, image/*, .heic". Segments may be exact media types, wildcard
// subtypes or file extensions.
func AcceptsType(accepted, mediaType, fileName string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, raw := range strings.Split(accepted, ",") {
		pattern := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case pattern == "":
			continue
		case pattern == "*" || pattern == "*/*":
			return true
		case strings.HasPrefix(pattern, "."):
			if ext != "" && ext == pattern {
				return true
			}
		case strings.HasSuffix(pattern, "/*"):
			if mediaType != "" && strings.HasPrefix(mediaType, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		default:
			if mediaType == pattern {
				return true
			}
		}
	}
	return false
}

func (t *Tree) photo(uid string) (*model.Field, error) {
	field, err := t.Find(uid)
	if err != nil {
		return nil, err
	}
	if field.Type != model.FieldTypePhoto {
		return nil, fmt.Errorf("%w: %s is %q", ErrNotPhoto, uid, field.Type)
	}
	return field, nil
}
