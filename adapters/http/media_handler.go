package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/media"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
)

type MediaHandler struct {
	uploadMediaUC *mediaUC.UploadMediaUseCase
}

func NewMediaHandler(uploadUC *mediaUC.UploadMediaUseCase) *MediaHandler {
	return &MediaHandler{uploadMediaUC: uploadUC}
}

// UploadMedia accepts a multipart image upload for use in section content
// (about images, custom blocks, project screenshots).
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	input := mediaUC.UploadMediaInput{
		OwnerID:     ownerID,
		File:        file,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
	}

	output, err := h.uploadMediaUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": output.URL, "public_id": output.PublicID})
}
