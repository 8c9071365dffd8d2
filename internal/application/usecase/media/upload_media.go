package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/creatorloop/creatorloop-api/internal/application/service"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// Images referenced from section blocks go through here; the upload returns
// the URL the block stores.
type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(uploader service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: uploader, logger: log}
}

type UploadMediaInput struct {
	OwnerID     uuid.UUID
	File        io.Reader
	ContentType string
	SizeBytes   int64
}

type UploadMediaOutput struct {
	URL      string
	PublicID string
}

const maxUploadBytes = 10 << 20 // 10 MiB

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	if !allowedContentTypes[input.ContentType] {
		return nil, apperror.NewInvalidInputMessage("Only JPEG, PNG, GIF and WebP images are supported", input.ContentType)
	}
	if input.SizeBytes > maxUploadBytes {
		return nil, apperror.NewInvalidInputMessage("Image is too large (10 MB max)", fmt.Sprintf("%d bytes", input.SizeBytes))
	}

	folder := fmt.Sprintf("profiles/%s/sections", input.OwnerID.String())
	publicID := uuid.New().String()

	url, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload image", err)
	}

	return &UploadMediaOutput{URL: url, PublicID: folder + "/" + publicID}, nil
}
