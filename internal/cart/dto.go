package cart

import product "github.com/angelmondragon/mallkv/internal/products"

// Line is one product in an owner's cart. Name, price and image are copied
// from the product when the line is first added and never refreshed.
type Line struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	Selected bool    `json:"selected"`
}

// Snapshot is the product data captured by Add.
type Snapshot struct {
	ID    int     `json:"id" validate:"gt=0"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image"`
}

// SnapshotOf copies the cart-relevant fields of p.
func SnapshotOf(p product.Product) Snapshot {
	return Snapshot{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}
