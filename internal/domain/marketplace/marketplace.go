package marketplace

import "context"

const StatusPublished = "published"

// Product is a marketplace listing as the upstream returns it. Only
// published products are offerable in a storefront section.
type Product struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Currency           string  `json:"currency"`
	FeaturedImageURL   string  `json:"featured_image_url"`
	ProductTypeDisplay string  `json:"product_type_display"`
	Status             string  `json:"status"`
}

type CheckoutInput struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Creator   string  `json:"creator"`
	ImageURL  string  `json:"image_url"`
}

type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type Client interface {
	ListProductsByCreator(ctx context.Context, username string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
}
