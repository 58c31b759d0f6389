package product

import (
	"strings"
	"time"

	"puente-core/internal/pkg/patch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	id          uuid.UUID
	sellerID    uuid.UUID
	name        string
	description string
	sku         string
	vertical    string
	price       decimal.Decimal
	attributes  Attributes
	isActive    bool
	stock       StockLevel
	createdAt   time.Time
	updatedAt   time.Time
}

type NewProductInput struct {
	SellerID    uuid.UUID
	Name        string
	Description string
	SKU         string
	Vertical    string
	Price       decimal.Decimal
	Attributes  Attributes
	Stock       int32
}

func NewProduct(in NewProductInput, now time.Time) (*Product, error) {
	if in.SellerID == uuid.Nil {
		return nil, ErrMissingSeller
	}
	stock, err := NewStockLevel(in.Stock, 0, 0)
	if err != nil {
		return nil, err
	}

	p := &Product{
		id:         uuid.New(),
		sellerID:   in.SellerID,
		attributes: in.Attributes.Clone(),
		isActive:   true,
		stock:      stock,
		createdAt:  now,
		updatedAt:  now,
	}
	if err := p.setCatalogFields(in.Name, in.Description, in.SKU, in.Vertical, in.Price); err != nil {
		return nil, err
	}
	return p, nil
}

// Reconstruct rebuilds a persisted product without re-running creation rules.
func Reconstruct(
	id, sellerID uuid.UUID,
	name, description, sku, vertical string,
	price decimal.Decimal,
	attributes Attributes,
	isActive bool,
	stock StockLevel,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		sellerID:    sellerID,
		name:        name,
		description: description,
		sku:         sku,
		vertical:    vertical,
		price:       price,
		attributes:  attributes,
		isActive:    isActive,
		stock:       stock,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Patch carries optional catalog changes; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	SKU         *string
	Vertical    *string
	Price       *decimal.Decimal
	Attributes  *Attributes
	IsActive    *bool
	Stock       *int32
}

func (p *Product) Apply(ch Patch, now time.Time) error {
	stock := p.stock
	if ch.Stock != nil {
		var err error
		if stock, err = stock.Restock(*ch.Stock); err != nil {
			return err
		}
	}

	err := p.setCatalogFields(
		patch.Coalesce(ch.Name, p.name),
		patch.Coalesce(ch.Description, p.description),
		patch.Coalesce(ch.SKU, p.sku),
		patch.Coalesce(ch.Vertical, p.vertical),
		patch.Coalesce(ch.Price, p.price),
	)
	if err != nil {
		return err
	}
	if ch.Attributes != nil {
		p.attributes = ch.Attributes.Clone()
	}
	p.isActive = patch.Coalesce(ch.IsActive, p.isActive)
	p.stock = stock
	p.updatedAt = now
	return nil
}

func (p *Product) setCatalogFields(name, description, sku, vertical string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	vertical = strings.ToLower(strings.TrimSpace(vertical))

	switch {
	case name == "" || len(name) > MaxNameLength:
		return ErrEmptyName
	case sku == "" || len(sku) > MaxSKULength:
		return ErrEmptySKU
	case vertical == "":
		return ErrEmptyVertical
	case price.IsNegative():
		return ErrNegativePrice
	}
	if len(description) > MaxDescriptionLength {
		description = description[:MaxDescriptionLength]
	}

	p.name = name
	p.description = description
	p.sku = sku
	p.vertical = vertical
	p.price = price
	return nil
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) SellerID() uuid.UUID    { return p.sellerID }
func (p *Product) Name() string           { return p.name }
func (p *Product) Description() string    { return p.description }
func (p *Product) SKU() string            { return p.sku }
func (p *Product) Vertical() string       { return p.vertical }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Attributes() Attributes { return p.attributes.Clone() }
func (p *Product) IsActive() bool         { return p.isActive }
func (p *Product) StockLevel() StockLevel { return p.stock }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
