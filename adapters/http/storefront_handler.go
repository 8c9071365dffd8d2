package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storefrontUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/storefront"
	"github.com/creatorloop/creatorloop-api/internal/domain/marketplace"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
)

type StorefrontHandler struct {
	storefrontUseCase *storefrontUC.StorefrontUseCase
}

func NewStorefrontHandler(uc *storefrontUC.StorefrontUseCase) *StorefrontHandler {
	return &StorefrontHandler{storefrontUseCase: uc}
}

// ListOfferable returns the creator's published products not yet on their
// storefront. A marketplace outage shows up as an empty list, not an error.
func (h *StorefrontHandler) ListOfferable(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	products, err := h.storefrontUseCase.ListOfferable(c.Request.Context(), ownerID, GetUsernameFromGinContext(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AddItem adds either a native product reference (product_id set) or an
// external link item (title + url set) to the storefront section.
func (h *StorefrontHandler) AddItem(c *gin.Context) {

	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "owner information not found"})
		return
	}

	var req AddStorefrontItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	var err error
	var s *section.Section
	if req.ProductID != "" {
		s, err = h.storefrontUseCase.AddNativeItem(c.Request.Context(), storefrontUC.AddNativeItemInput{
			OwnerID:   ownerID,
			ProductID: req.ProductID,
		})
	} else {
		s, err = h.storefrontUseCase.AddExternalItem(c.Request.Context(), storefrontUC.AddExternalItemInput{
			OwnerID:  ownerID,
			Title:    req.Title,
			URL:      req.URL,
			Price:    req.Price,
			Currency: req.Currency,
			Badge:    req.Badge,
			Category: req.Category,
			ImageURL: req.ImageURL,
		})
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToSectionDTO(s))
}

// Checkout creates a marketplace checkout session. Failures surface to the
// buyer; checkout must never fail silently.
func (h *StorefrontHandler) Checkout(c *gin.Context) {

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	session, err := h.storefrontUseCase.Checkout(c.Request.Context(), marketplace.CheckoutInput{
		ProductID: req.ProductID,
		Title:     req.Title,
		Price:     req.Price,
		Currency:  req.Currency,
		Creator:   req.Creator,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, session)
}
