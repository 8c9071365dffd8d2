package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc}
}

// GetPublicProfile serves the view-mode profile. No auth required.
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {

	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'username' is required"})
		return
	}

	profile, err := h.profileUseCase.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateSocialLinks(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	var req UpdateSocialLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	links, err := h.profileUseCase.UpdateSocialLinks(c.Request.Context(), profileUC.UpdateSocialLinksInput{
		OwnerID: ownerID,
		Patch:   req.ToDomainPatch(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, links)
}
