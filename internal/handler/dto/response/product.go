package response

import (
	"puente-core/internal/usecase/queries"
)

type ProductResponse struct {
	ID             string         `json:"id"`
	SellerID       string         `json:"seller_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          string         `json:"price"`
	SKU            string         `json:"sku"`
	Vertical       string         `json:"vertical"`
	Attributes     map[string]any `json:"attributes"`
	IsActive       bool           `json:"is_active"`
	Stock          int32          `json:"stock"`
	ReservedStock  int32          `json:"reserved_stock"`
	ConsumedStock  int32          `json:"consumed_stock"`
	AvailableStock int32          `json:"available_stock" copier:"-"`
	CreatedAt      int64          `json:"created_at"`
	UpdatedAt      int64          `json:"updated_at"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	res := &ProductResponse{}
	copyView(res, v)
	res.AvailableStock = v.Available()
	if res.Attributes == nil {
		res.Attributes = map[string]any{}
	}
	return res
}

type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	ListMeta
}

func FromProductViews(views []*queries.ProductView, next *queries.Cursor) *ProductListResponse {
	res := &ProductListResponse{Products: make([]*ProductResponse, len(views))}
	for i, v := range views {
		res.Products[i] = FromProductView(v)
	}
	res.Count = len(views)
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}

type CreatedResponse struct {
	ID string `json:"id"`
}
