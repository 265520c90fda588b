package product

import (
	"strings"

	"github.com/angelmondragon/mallkv/pkg/enums"
	"github.com/angelmondragon/mallkv/pkg/validate"
)

// CategoryAll selects every active product regardless of category.
const CategoryAll = "all"

// Product is one catalog entry as stored under the "products" key.
type Product struct {
	ID            int                 `json:"id"`
	Name          string              `json:"name"`
	Price         float64             `json:"price"`
	OriginalPrice *float64            `json:"originalPrice,omitempty"`
	Image         string              `json:"image"`
	Category      string              `json:"category"`
	Stock         int                 `json:"stock"`
	Status        enums.ProductStatus `json:"status"`
	Description   string              `json:"description,omitempty"`
	Rating        *float64            `json:"rating,omitempty"`
	Sales         int                 `json:"sales"`
}

// IsActive reports whether the product is listed.
func (p Product) IsActive() bool {
	return p.Status == enums.ProductStatusActive
}

// Draft holds the vendor input for a new product. The id and sales counter
// are assigned by the catalog.
type Draft struct {
	Name          string              `json:"name" validate:"required,max=120"`
	Price         float64             `json:"price" validate:"gte=0"`
	OriginalPrice *float64            `json:"originalPrice" validate:"omitempty,gte=0"`
	Image         string              `json:"image"`
	Category      string              `json:"category" validate:"required"`
	Stock         int                 `json:"stock" validate:"gte=0"`
	Status        enums.ProductStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Description   string              `json:"description" validate:"max=2000"`
	Rating        *float64            `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (d Draft) toProduct(id int) Product {
	status := d.Status
	if status == "" {
		status = enums.ProductStatusActive
	}
	return Product{
		ID:            id,
		Name:          validate.Sanitize(d.Name, 0),
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Image:         strings.TrimSpace(d.Image),
		Category:      validate.Sanitize(d.Category, 0),
		Stock:         d.Stock,
		Status:        status,
		Description:   strings.TrimSpace(d.Description),
		Rating:        d.Rating,
	}
}

// Patch carries the fields to change on an existing product. Nil fields are
// left untouched. The sales counter is not patchable.
type Patch struct {
	Name          *string              `json:"name" validate:"omitnil,min=1,max=120"`
	Price         *float64             `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *float64             `json:"originalPrice" validate:"omitempty,gte=0"`
	Image         *string              `json:"image"`
	Category      *string              `json:"category" validate:"omitnil,min=1"`
	Stock         *int                 `json:"stock" validate:"omitempty,gte=0"`
	Status        *enums.ProductStatus `json:"status" validate:"omitnil,oneof=active inactive"`
	Description   *string              `json:"description" validate:"omitempty,max=2000"`
	Rating        *float64             `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (p Patch) applyTo(product *Product) {
	if p.Name != nil {
		product.Name = validate.Sanitize(*p.Name, 0)
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		value := *p.OriginalPrice
		product.OriginalPrice = &value
	}
	if p.Image != nil {
		product.Image = strings.TrimSpace(*p.Image)
	}
	if p.Category != nil {
		product.Category = validate.Sanitize(*p.Category, 0)
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Status != nil {
		product.Status = *p.Status
	}
	if p.Description != nil {
		product.Description = strings.TrimSpace(*p.Description)
	}
	if p.Rating != nil {
		value := *p.Rating
		product.Rating = &value
	}
}
