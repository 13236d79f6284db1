package handlers

import (
	"errors"
	"net/http"

	"blogapi/internal/service"
)

// formUpload extracts the named file from a parsed multipart form. A missing
// field is not an error: it returns a nil Upload so callers can treat the
// file as optional. The returned closer is always safe to defer.
func formUpload(r *http.Request, field string) (*service.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	upload := &service.Upload{
		Name: header.Filename,
		Size: header.Size,
		File: file,
	}

	return upload, func() { file.Close() }, nil
}
