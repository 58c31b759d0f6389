//go:build unit || e2e

package builder

import (
	"time"

	"puente-core/internal/domain/product"
	reqdto "puente-core/internal/handler/dto/request"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Name        string
	Description string
	SKU         string
	Vertical    string
	Price       decimal.Decimal
	Attributes  map[string]any
	IsActive    bool
	Stock       int32
	Reserved    int32
	Consumed    int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProductBuilder() *ProductBuilder {
	now := time.Now()
	return &ProductBuilder{
		ID:          uuid.New(),
		SellerID:    uuid.New(),
		Name:        "Yerba Mate 1kg",
		Description: "Organic yerba mate from Misiones",
		SKU:         "YM-1KG-" + uuid.NewString()[:8],
		Vertical:    "food",
		Price:       decimal.RequireFromString("100.00"),
		Attributes:  map[string]any{"organic": true, "weight_grams": float64(1000)},
		IsActive:    true,
		Stock:       10,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) WithSellerID(id uuid.UUID) *ProductBuilder {
	b.SellerID = id
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

func (b *ProductBuilder) WithStock(stock, reserved int32) *ProductBuilder {
	b.Stock = stock
	b.Reserved = reserved
	return b
}

func (b *ProductBuilder) WithSKU(sku string) *ProductBuilder {
	b.SKU = sku
	return b
}

func (b *ProductBuilder) Inactive() *ProductBuilder {
	b.IsActive = false
	return b
}

func (b *ProductBuilder) input() product.NewProductInput {
	attrs, err := product.AttributesFromMap(b.Attributes)
	if err != nil {
		panic(err)
	}
	return product.NewProductInput{
		SellerID:    b.SellerID,
		Name:        b.Name,
		Description: b.Description,
		SKU:         b.SKU,
		Vertical:    b.Vertical,
		Price:       b.Price,
		Attributes:  attrs,
		Stock:       b.Stock,
	}
}

// BuildDomain runs the creation rules, so reserved and consumed start at zero.
func (b *ProductBuilder) BuildDomain() (*product.Product, error) {
	return product.NewProduct(b.input(), b.CreatedAt)
}

// BuildReconstructed returns a persisted-looking product carrying the builder's stock counters.
func (b *ProductBuilder) BuildReconstructed() *product.Product {
	stock, err := product.NewStockLevel(b.Stock, b.Reserved, b.Consumed)
	if err != nil {
		panic(err)
	}
	in := b.input()
	return product.Reconstruct(b.ID, b.SellerID, b.Name, b.Description, b.SKU, b.Vertical,
		b.Price, in.Attributes, b.IsActive, stock, b.CreatedAt, b.UpdatedAt)
}

func (b *ProductBuilder) BuildCreateRequestDTO() reqdto.CreateProductRequest {
	return reqdto.CreateProductRequest{
		SellerID:    b.SellerID,
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		SKU:         b.SKU,
		Vertical:    b.Vertical,
		Attributes:  b.Attributes,
		Stock:       b.Stock,
	}
}

func (b *ProductBuilder) BuildView() *queries.ProductView {
	return &queries.ProductView{
		ID:            b.ID,
		SellerID:      b.SellerID,
		Name:          b.Name,
		Description:   b.Description,
		Price:         b.Price,
		SKU:           b.SKU,
		Vertical:      b.Vertical,
		Attributes:    b.Attributes,
		IsActive:      b.IsActive,
		Stock:         b.Stock,
		ReservedStock: b.Reserved,
		ConsumedStock: b.Consumed,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
