package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sectionUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
)

type SectionHandler struct {
	sectionUseCase *sectionUC.SectionUseCase
}

func NewSectionHandler(uc *sectionUC.SectionUseCase) *SectionHandler {
	return &SectionHandler{sectionUseCase: uc}
}

func (h *SectionHandler) ListSections(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	sections, err := h.sectionUseCase.ListSections(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(apperror.NewInternal("list sections failed", err))
		return
	}

	c.JSON(http.StatusOK, ToSectionDTOs(sections))
}

func (h *SectionHandler) AddSection(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	input := sectionUC.AddSectionInput{
		OwnerID: ownerID,
		Type:    section.SectionType(req.Type),
		Role:    GetRoleFromGinContext(c),
		Tier:    GetTierFromGinContext(c),
	}
	if req.AfterSectionID != nil {
		afterID, err := uuid.Parse(*req.AfterSectionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid after_section_id"})
			return
		}
		input.AfterSectionID = &afterID
	}

	s, err := h.sectionUseCase.AddSection(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToSectionDTO(s))
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section ID"})
		return
	}

	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	input := sectionUC.UpdateSectionInput{
		SectionID:  sectionID,
		OwnerID:    ownerID,
		Title:      req.Title,
		RawContent: req.Content,
	}

	s, err := h.sectionUseCase.UpdateSection(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, section.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSectionDTO(s))
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section ID"})
		return
	}

	if err := h.sectionUseCase.DeleteSection(c.Request.Context(), sectionID, ownerID); err != nil {
		if errors.Is(err, section.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
			return
		}
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SectionHandler) ReorderSections(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	ids, err := req.ToUUIDs()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section ID in list"})
		return
	}

	sections, err := h.sectionUseCase.ReorderSections(c.Request.Context(), sectionUC.ReorderInput{
		OwnerID:    ownerID,
		OrderedIDs: ids,
	})
	if err != nil {
		if errors.Is(err, section.ErrOrderMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "section_ids must contain every section exactly once"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSectionDTOs(sections))
}

func (h *SectionHandler) ToggleVisibility(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section ID"})
		return
	}

	s, err := h.sectionUseCase.ToggleVisibility(c.Request.Context(), sectionID, ownerID)
	if err != nil {
		if errors.Is(err, section.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSectionDTO(s))
}

func (h *SectionHandler) AvailableTypes(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	entries, err := h.sectionUseCase.AvailableTypes(c.Request.Context(), ownerID, GetRoleFromGinContext(c), GetTierFromGinContext(c))
	if err != nil {
		c.Error(apperror.NewInternal("list section types failed", err))
		return
	}

	dtos := make([]PickerEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ToPickerEntryDTO(e)
	}
	c.JSON(http.StatusOK, dtos)
}
