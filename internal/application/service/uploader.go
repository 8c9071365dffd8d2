package service

import (
	"context"
	"io"
)

// Uploader stores media for profile and block images and returns a public
// URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
