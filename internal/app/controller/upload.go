package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
)

// formPhoto opens an optional multipart file. A missing or empty file yields a
// nil upload. The returned func closes the file and is always safe to call.
func formPhoto(c *gin.Context, field string) (*service.PhotoUpload, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if header.Filename == "" || header.Size == 0 {
		return nil, noop, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	return &service.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, func() { _ = file.Close() }, nil
}
