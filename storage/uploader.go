package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// ImageExtension возвращает расширение файла для MIME-типа изображения.
func ImageExtension(contentType string) (string, error) {
	return extension(imageExtensions, contentType)
}

// VideoExtension возвращает расширение файла для MIME-типа видео.
func VideoExtension(contentType string) (string, error) {
	return extension(videoExtensions, contentType)
}

func extension(known map[string]string, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if ext, ok := known[ct]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnsupportedContentType, contentType)
}
