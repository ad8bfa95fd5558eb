package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads binary content to Cloudinary and serves back the
// delivery URL. Paths double as public IDs, so re-uploading the same path
// overwrites the previous asset.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore initialises the client from a cloudinary:// URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, path string, data io.Reader) (string, error) {
	overwrite := true
	res, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID:     path,
		Overwrite:    &overwrite,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %q: %w", path, err)
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStore) URL(ctx context.Context, path string) (string, error) {
	asset, err := s.cld.Image(path)
	if err != nil {
		return "", fmt.Errorf("cloudinary asset %q: %w", path, err)
	}
	url, err := asset.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url %q: %w", path, err)
	}
	return url, nil
}
