package storefront

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/internal/domain/marketplace"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// StorefrontUseCase covers the storefront section's marketplace-facing
// operations: listing offerable products, adding items of both kinds, and
// opening a checkout session for native items.
type StorefrontUseCase struct {
	sectionRepo section.Repository
	market      marketplace.Client
	logger      logger.Logger
}

func NewStorefrontUseCase(repo section.Repository, market marketplace.Client, log logger.Logger) *StorefrontUseCase {
	return &StorefrontUseCase{
		sectionRepo: repo,
		market:      market,
		logger:      log,
	}
}

// ListOfferable returns the caller's published products that are not already
// in the storefront section. A marketplace outage degrades to an empty list:
// the listing is display-only.
func (uc *StorefrontUseCase) ListOfferable(ctx context.Context, ownerID uuid.UUID, username string) ([]marketplace.Product, error) {
	content, _, err := uc.storefrontContent(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	products, err := uc.market.ListProductsByCreator(ctx, username)
	if err != nil {
		uc.logger.Warn("Marketplace listing failed, returning empty offerable list",
			zap.String("username", username), zap.Error(err))
		return []marketplace.Product{}, nil
	}

	offerable := make([]marketplace.Product, 0, len(products))
	for _, p := range products {
		if p.Status != marketplace.StatusPublished {
			continue
		}
		if content != nil && content.HasProduct(p.ID) {
			continue
		}
		offerable = append(offerable, p)
	}
	return offerable, nil
}

type AddNativeItemInput struct {
	OwnerID   uuid.UUID
	ProductID string
}

// AddNativeItem appends a native product reference to the storefront
// section, denormalizing price, currency and image from the product at add
// time. Only published products can be added, and never twice.
func (uc *StorefrontUseCase) AddNativeItem(ctx context.Context, input AddNativeItemInput) (*section.Section, error) {
	content, s, err := uc.storefrontContent(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperror.NewNotFound("storefront section", input.OwnerID.String())
	}
	if content.HasProduct(input.ProductID) {
		return nil, apperror.NewConflict("storefront item", "product_id", input.ProductID)
	}

	product, err := uc.market.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, apperror.NewInternal("failed to look up product", err)
	}
	if product.Status != marketplace.StatusPublished {
		return nil, apperror.NewInvalidInputMessage("Only published products can be offered", "product status "+product.Status)
	}

	content.Items = append(content.Items, section.StorefrontItem{
		ProductID:   product.ID,
		Title:       product.Title,
		Price:       product.Price,
		Currency:    product.Currency,
		ImageURL:    product.FeaturedImageURL,
		ProductType: product.ProductTypeDisplay,
	})

	return uc.saveContent(ctx, s, content)
}

type AddExternalItemInput struct {
	OwnerID  uuid.UUID
	Title    string
	URL      string
	Price    float64
	Currency string
	Badge    string
	Category string
	ImageURL string
}

// AddExternalItem appends a plain outbound link item. Title and url are
// required; a schemeless url gets https:// prefixed.
func (uc *StorefrontUseCase) AddExternalItem(ctx context.Context, input AddExternalItemInput) (*section.Section, error) {
	if input.Title == "" || input.URL == "" {
		return nil, apperror.NewInvalidInputMessage("Title and URL are required", "external storefront item")
	}

	content, s, err := uc.storefrontContent(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperror.NewNotFound("storefront section", input.OwnerID.String())
	}

	content.Items = append(content.Items, section.StorefrontItem{
		Title:    input.Title,
		URL:      section.EnsureScheme(input.URL),
		Price:    input.Price,
		Currency: input.Currency,
		Badge:    input.Badge,
		Category: input.Category,
		ImageURL: input.ImageURL,
	})

	return uc.saveContent(ctx, s, content)
}

// Checkout opens a purchase session for a native item. External items never
// reach this path; they are plain links.
func (uc *StorefrontUseCase) Checkout(ctx context.Context, input marketplace.CheckoutInput) (*marketplace.CheckoutSession, error) {
	if input.ProductID == "" {
		return nil, apperror.NewInvalidInputMessage("A product is required for checkout", "missing product_id")
	}
	session, err := uc.market.CreateCheckoutSession(ctx, input)
	if err != nil {
		return nil, apperror.NewInternal("failed to create checkout session", err)
	}
	return session, nil
}

// RefreshSnapshots re-reads every native item's product and updates the
// denormalized price/currency/image. The worker runs this on section events.
func (uc *StorefrontUseCase) RefreshSnapshots(ctx context.Context, ownerID uuid.UUID) error {
	content, s, err := uc.storefrontContent(ctx, ownerID)
	if err != nil {
		return err
	}
	if s == nil || len(content.Items) == 0 {
		return nil
	}

	changed := false
	for i, item := range content.Items {
		if !item.IsNative() {
			continue
		}
		product, err := uc.market.GetProduct(ctx, item.ProductID)
		if err != nil {
			uc.logger.Warn("Skipping snapshot refresh for product",
				zap.String("product_id", item.ProductID), zap.Error(err))
			continue
		}
		if item.Price != product.Price || item.Currency != product.Currency ||
			item.ImageURL != product.FeaturedImageURL || item.Title != product.Title {
			content.Items[i].Price = product.Price
			content.Items[i].Currency = product.Currency
			content.Items[i].ImageURL = product.FeaturedImageURL
			content.Items[i].Title = product.Title
			changed = true
		}
	}

	if !changed {
		return nil
	}
	_, err = uc.saveContent(ctx, s, content)
	return err
}

// storefrontContent finds the owner's storefront section, if any. A nil
// section with nil error means the profile has no storefront.
func (uc *StorefrontUseCase) storefrontContent(ctx context.Context, ownerID uuid.UUID) (*section.StorefrontContent, *section.Section, error) {
	sections, err := uc.sectionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	for _, s := range sections {
		if s.Type == section.TypeStorefront {
			if content, ok := s.Content.(*section.StorefrontContent); ok {
				return content, s, nil
			}
			return nil, nil, apperror.NewInternal("storefront section has wrong content shape", section.ErrContentTypeMismatch)
		}
	}
	return nil, nil, nil
}

func (uc *StorefrontUseCase) saveContent(ctx context.Context, s *section.Section, content *section.StorefrontContent) (*section.Section, error) {
	s.Content = content
	content.Normalize()
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("storefront validation failed", err)
	}
	s.UpdatedAt = time.Now().UTC()
	if err := uc.sectionRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
