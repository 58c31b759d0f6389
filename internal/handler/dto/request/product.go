package request

import (
	"puente-core/internal/domain/product"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/patch"
	"puente-core/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyPatch = errs.Mark(errs.New("no field to update"), errs.ErrValidation)

type CreateProductRequest struct {
	SellerID    uuid.UUID       `json:"seller_id" binding:"required"`
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku" binding:"required,max=64"`
	Vertical    string          `json:"vertical" binding:"required,max=64"`
	Attributes  map[string]any  `json:"attributes"`
	Stock       int32           `json:"stock" binding:"min=0"`
}

func (r *CreateProductRequest) ToDomain() (product.NewProductInput, error) {
	attrs, err := product.AttributesFromMap(r.Attributes)
	if err != nil {
		return product.NewProductInput{}, errs.Mark(err, errs.ErrValidation)
	}
	return product.NewProductInput{
		SellerID:    r.SellerID,
		Name:        r.Name,
		Description: r.Description,
		SKU:         r.SKU,
		Vertical:    r.Vertical,
		Price:       r.Price,
		Attributes:  attrs,
		Stock:       r.Stock,
	}, nil
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	SKU         *string          `json:"sku" binding:"omitempty,max=64"`
	Vertical    *string          `json:"vertical" binding:"omitempty,max=64"`
	Attributes  *map[string]any  `json:"attributes"`
	IsActive    *bool            `json:"is_active"`
	Stock       *int32           `json:"stock" binding:"omitempty,min=0"`
}

func (r *UpdateProductRequest) ToPatch() (product.Patch, error) {
	if patch.Empty(r.Name != nil, r.Description != nil, r.Price != nil, r.SKU != nil,
		r.Vertical != nil, r.Attributes != nil, r.IsActive != nil, r.Stock != nil) {
		return product.Patch{}, ErrEmptyPatch
	}

	p := product.Patch{
		Name:        r.Name,
		Description: r.Description,
		SKU:         r.SKU,
		Vertical:    r.Vertical,
		Price:       r.Price,
		IsActive:    r.IsActive,
		Stock:       r.Stock,
	}
	if r.Attributes != nil {
		attrs, err := product.AttributesFromMap(*r.Attributes)
		if err != nil {
			return product.Patch{}, errs.Mark(err, errs.ErrValidation)
		}
		p.Attributes = &attrs
	}
	return p, nil
}

type StockItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type StockItemsRequest struct {
	Items []StockItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r *StockItemsRequest) ToCommand() []commands.StockItem {
	items := make([]commands.StockItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.StockItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return items
}
