package services

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader stores an image and returns its public URL
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.cld == nil {
		return "", errors.New("cloudinary is not configured")
	}
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder, PublicID: publicID})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}
