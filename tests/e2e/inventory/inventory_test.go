//go:build e2e

package inventory_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	reqdto "puente-core/internal/handler/dto/request"
	"puente-core/internal/handler/dto/response"
	"puente-core/tests/common/builder"
	"puente-core/tests/common/dbtest"
	"puente-core/tests/common/httptest"
	"puente-core/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	productsURL = "/api/products"
	productURL  = "/api/products/%s"
	reserveURL  = "/api/products/stock/reserve"
	releaseURL  = "/api/products/stock/release"
	confirmURL  = "/api/products/stock/confirm"
)

type InventorySuite struct {
	e2e.SharedSuite
}

func TestInventorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(InventorySuite))
}

func stockRequest(items ...reqdto.StockItemRequest) reqdto.StockItemsRequest {
	return reqdto.StockItemsRequest{Items: items}
}

func item(productID uuid.UUID, qty int32) reqdto.StockItemRequest {
	return reqdto.StockItemRequest{ProductID: productID, Quantity: qty}
}

// =============================================================================
// TestProductCatalog - product create/read/update/delete
// =============================================================================

func (s *InventorySuite) TestProductCatalog() {
	s.Run("Normal case: created product is readable with its stock counters", func() {
		t := s.T()

		b := builder.NewProductBuilder().WithPrice("1500.50").WithStock(25, 0)
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, productsURL, b.BuildCreateRequestDTO(), s.GatewayHeaders(""))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEmpty(t, created.ID)

		dw := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodGet, fmt.Sprintf(productURL, created.ID), nil, s.GatewayHeaders(""))
		require.Equal(t, http.StatusOK, dw.Code)

		var actual response.ProductResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &actual))

		expected := &response.ProductResponse{
			ID:             created.ID,
			SellerID:       b.SellerID.String(),
			Name:           b.Name,
			Description:    b.Description,
			Price:          "1500.50",
			SKU:            b.SKU,
			Vertical:       b.Vertical,
			Attributes:     b.Attributes,
			IsActive:       true,
			Stock:          25,
			AvailableStock: 25,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ProductResponse{}, "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Product response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: duplicate SKU for the same seller conflicts", func() {
		t := s.T()

		body := builder.NewProductBuilder().WithSKU("DUP-1").BuildCreateRequestDTO()
		w1 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, productsURL, body, s.GatewayHeaders(""))
		require.Equal(t, http.StatusCreated, w1.Code)

		w2 := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, productsURL, body, s.GatewayHeaders(""))
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, "")
	})

	s.Run("Error case: lowering stock below the reserved quantity is rejected", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 10, 6)
		patch := map[string]any{"stock": 5}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPatch, fmt.Sprintf(productURL, id), patch, s.GatewayHeaders(""))
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		require.Equal(t, dbtest.StockCounters{Stock: 10, Reserved: 6}, dbtest.GetStock(t, s.DB, id))
	})

	s.Run("Error case: a product holding reservations cannot be deleted", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 10, 1)
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodDelete, fmt.Sprintf(productURL, id), nil, s.GatewayHeaders(""))
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Auth test - requests without gateway credentials are rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, productsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestStockLifecycle - reserve, release and confirm against real rows
// =============================================================================

func (s *InventorySuite) TestStockLifecycle() {
	s.Run("Normal case: reserve then confirm consumes the stock", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 10, 0)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reserveURL, stockRequest(item(id, 4)), s.GatewayHeaders(""))
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, dbtest.StockCounters{Stock: 10, Reserved: 4}, dbtest.GetStock(t, s.DB, id))

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, confirmURL, stockRequest(item(id, 4)), s.GatewayHeaders(""))
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, dbtest.StockCounters{Stock: 6, Reserved: 0, Consumed: 4}, dbtest.GetStock(t, s.DB, id))
	})

	s.Run("Normal case: release returns reserved units to availability", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 10, 3)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, releaseURL, stockRequest(item(id, 3)), s.GatewayHeaders(""))
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, int32(10), dbtest.GetStock(t, s.DB, id).Available())
	})

	s.Run("Error case: a failing item rolls back the items reserved before it", func() {
		t := s.T()

		seller := uuid.New()
		first := dbtest.CreateTestProduct(t, s.DB, seller, "10.00", 10, 0)
		second := dbtest.CreateTestProduct(t, s.DB, seller, "10.00", 2, 0)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reserveURL,
			stockRequest(item(first, 5), item(second, 3)), s.GatewayHeaders(""))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient stock")

		require.Equal(t, int32(0), dbtest.GetStock(t, s.DB, first).Reserved)
		require.Equal(t, int32(0), dbtest.GetStock(t, s.DB, second).Reserved)
	})

	s.Run("Error case: releasing more than reserved leaves counters untouched", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 10, 1)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, releaseURL, stockRequest(item(id, 2)), s.GatewayHeaders(""))
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, dbtest.StockCounters{Stock: 10, Reserved: 1}, dbtest.GetStock(t, s.DB, id))
	})

	s.Run("Error case: reserving an unknown product is not found", func() {
		t := s.T()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reserveURL, stockRequest(item(uuid.New(), 1)), s.GatewayHeaders(""))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestConcurrentReservations - no oversell under contention
// =============================================================================

func (s *InventorySuite) TestConcurrentReservations() {
	s.Run("Concurrency: two reservations of 6 on stock 10 admit exactly one", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 10, 0)

		const callers = 2
		codes := make([]int, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reserveURL, stockRequest(item(id, 6)), s.GatewayHeaders(""))
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		var ok, conflict int
		for _, code := range codes {
			switch code {
			case http.StatusNoContent:
				ok++
			case http.StatusConflict:
				conflict++
			}
		}
		require.Equal(t, 1, ok, "codes: %v", codes)
		require.Equal(t, 1, conflict, "codes: %v", codes)
		require.Equal(t, dbtest.StockCounters{Stock: 10, Reserved: 6}, dbtest.GetStock(t, s.DB, id))
	})

	s.Run("Concurrency: many single-unit reservations never exceed stock", func() {
		t := s.T()

		id := dbtest.CreateTestProduct(t, s.DB, uuid.New(), "10.00", 5, 0)

		const callers = 12
		var wg sync.WaitGroup
		var mu sync.Mutex
		granted := 0
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reserveURL, stockRequest(item(id, 1)), s.GatewayHeaders(""))
				if w.Code == http.StatusNoContent {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		stock := dbtest.GetStock(t, s.DB, id)
		require.LessOrEqual(t, stock.Reserved, stock.Stock)
		require.Equal(t, int32(granted), stock.Reserved)
	})
}
