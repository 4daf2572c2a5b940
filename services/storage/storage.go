package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"sacredgreeks/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

type CloudinaryStorageService struct {
	api UploadAPI
}

func NewCloudinaryStorageService(cld *cloudinary.Cloudinary) *CloudinaryStorageService {
	return &CloudinaryStorageService{api: &cld.Upload}
}

// NewStorageServiceWithAPI is used by tests to swap the upload client.
func NewStorageServiceWithAPI(api UploadAPI) *CloudinaryStorageService {
	return &CloudinaryStorageService{api: api}
}

// readImage buffers at most MaxImageBytes and checks the sniffed content type.
func readImage(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxImageBytes {
		return nil, ErrTooLarge
	}
	if !allowedTypes[mimetype.Detect(data).String()] {
		return nil, ErrUnsupportedType
	}
	return data, nil
}

func (s *CloudinaryStorageService) UploadImage(ctx context.Context, r io.Reader, folder, publicID string) (string, string, error) {
	data, err := readImage(r)
	if err != nil {
		return "", "", err
	}

	overwrite := true
	params := uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		Overwrite:    &overwrite,
		ResourceType: "image",
	}
	result, err := s.api.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		utils.GetLogger().Error("storage: upload failed", zap.String("folder", folder), zap.Error(err))
		return "", "", fmt.Errorf("StorageService: failed to upload image: %w", err)
	}
	if result == nil || result.SecureURL == "" || result.PublicID == "" {
		return "", "", fmt.Errorf("StorageService: upload returned no asset")
	}
	return result.SecureURL, result.PublicID, nil
}

func (s *CloudinaryStorageService) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if _, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("StorageService: failed to delete %s: %w", publicID, err)
	}
	return nil
}
