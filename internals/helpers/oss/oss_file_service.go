package helper

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService is the uniform upload/delete facade the controllers use.
Images go through the WebP pipeline; attachments are uploaded as-is.
*/
type BlobService interface {
	UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL string, err error)
	UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, contentType string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// --------------------------------------------------
// Aliyun OSS backed implementation
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv builds the facade from ENV. prefix is optional
// (example: "uploads/").
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	if fh.Size > maxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image must be at most 5MB")
	}
	url, err := b.svc.UploadAsWebP(ctx, fh, dir) // re-encode → WebP
	if err != nil {
		return "", err
	}
	return url, nil
}

func (b *OSSBlobService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Upload to OSS failed")
	}
	return b.svc.PublicURL(key), ct, nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	return b.svc.DeleteByPublicURL(ctx, publicURL)
}
