package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	MaxImageBytes = 5 << 20
	AvatarFolder  = "avatars"
	ContentFolder = "content"
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// StorageService stores user-facing images.
type StorageService interface {
	UploadImage(ctx context.Context, r io.Reader, folder, publicID string) (url string, storedID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// UploadAPI is the subset of the Cloudinary upload API in use; *uploader.API satisfies it.
type UploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}
