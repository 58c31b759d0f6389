//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"puente-core/internal/domain/product"
	"puente-core/internal/handler/api"
	resdto "puente-core/internal/handler/dto/response"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"
	"puente-core/tests/common/builder"
	"puente-core/tests/common/httptest"
	"puente-core/tests/common/testutil"
	commandsmock "puente-core/tests/mock/commands"
	queriesmock "puente-core/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockInventoryCommands
	mockQueries  *queriesmock.MockProductQueries
	handler      *api.ProductHandler
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockInventoryCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockProductQueries(s.mockCtrl)
	s.handler = api.NewProductHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/products", s.handler.Create)
	s.router.GET("/products", s.handler.List)
	s.router.GET("/products/:id", s.handler.Get)
	s.router.PATCH("/products/:id", s.handler.Update)
	s.router.DELETE("/products/:id", s.handler.Delete)
	s.router.POST("/products/stock/reserve", s.handler.Reserve)
	s.router.POST("/products/stock/release", s.handler.Release)
	s.router.POST("/products/stock/confirm", s.handler.Confirm)
}

func (s *ProductHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}

type testCaseProduct struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ProductHandlerTestSuite) TestCreate() {
	url := "/products"
	reqBody := builder.NewProductBuilder().BuildCreateRequestDTO()
	newID := uuid.New()

	bound := []testCaseProduct{
		{name: "name length OK (200 chars)", mutate: testutil.Field("name", strings.Repeat("a", 200)), expectCode: http.StatusCreated},
		{name: "name length invalid (201 chars)", mutate: testutil.Field("name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
		{name: "sku length invalid (65 chars)", mutate: testutil.Field("sku", strings.Repeat("s", 65)), expectCode: http.StatusBadRequest},
		{name: "stock boundary OK (0)", mutate: testutil.Field("stock", 0), expectCode: http.StatusCreated},
		{name: "stock boundary invalid (-1)", mutate: testutil.Field("stock", -1), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseProduct{
		{name: "missing field: seller_id (required)", mutate: testutil.Field("seller_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: sku (required)", mutate: testutil.Field("sku", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: vertical (required)", mutate: testutil.Field("vertical", nil), expectCode: http.StatusBadRequest},
	}

	attributes := []testCaseProduct{
		{name: "attribute list of strings", mutate: testutil.Field("attributes", map[string]any{"sizes": []any{"S", "M"}}), expectCode: http.StatusCreated},
		{name: "nested attribute object", mutate: testutil.Field("attributes", map[string]any{"dims": map[string]any{"w": 1}}), expectCode: http.StatusBadRequest},
		{name: "attribute list of numbers", mutate: testutil.Field("attributes", map[string]any{"sizes": []any{1, 2}}), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseProduct{bound, missing, attributes}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(newID.String(), body["id"])
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/products/" + newID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(newID, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"duplicate sku", errs.Mark(errors.New("dup"), commands.ErrDuplicateSKU), http.StatusConflict, "Conflict"},
			{"domain validation", errs.Mark(product.ErrNegativePrice, errs.ErrValidation), http.StatusBadRequest, "Invalid request"},
			{"database failure", errors.New("database error"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ProductHandlerTestSuite) TestGet() {
	view := builder.NewProductBuilder().WithStock(10, 4).BuildView()

	s.Run("success: returns product with available stock", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/"+view.ID.String(), nil, "")

		var body resdto.ProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal("100.00", body.Price)
		s.Equal(int32(10), body.Stock)
		s.Equal(int32(4), body.ReservedStock)
		s.Equal(int32(6), body.AvailableStock)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, queries.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ProductHandlerTestSuite) TestList() {
	sellerID := uuid.New()
	views := []*queries.ProductView{
		builder.NewProductBuilder().WithSellerID(sellerID).BuildView(),
		builder.NewProductBuilder().WithSellerID(sellerID).BuildView(),
	}

	s.Run("success: passes filter, cursor and limit", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), &sellerID, &queries.Cursor{After: "abc"}, 2).
			Return(views, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/products?seller_id="+sellerID.String()+"&after=abc&limit=2", nil, "")

		var body resdto.ProductListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Products, 2)
		s.Equal(2, body.Count)
		s.Equal("next", body.NextCursor)
	})

	s.Run("success: no filter uses defaults", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), nil, nil, 0).Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products", nil, "")

		var body resdto.ProductListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.NextCursor)
	})

	s.Run("error: 400 on invalid query parameters", func() {
		for _, q := range []string{"limit=0", "limit=201", "limit=x", "seller_id=bad"} {
			s.Run(q, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products?"+q, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid")
			})
		}
	})

	s.Run("error: 400 on a forged cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/products?after=forged", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ProductHandlerTestSuite) TestUpdate() {
	view := builder.NewProductBuilder().BuildView()
	url := "/products/" + view.ID.String()

	s.Run("success: applies patch and returns the fresh view", func() {
		s.mockCommands.EXPECT().UpdateProduct(gomock.Any(), view.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, p product.Patch) error {
				s.Require().NotNil(p.Stock)
				s.Equal(int32(25), *p.Stock)
				s.Nil(p.Name)
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"stock": 25}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on empty patch", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 when stock would drop below reserved", func() {
		s.mockCommands.EXPECT().UpdateProduct(gomock.Any(), view.ID, gomock.Any()).
			Return(commands.ErrStockBelowReserved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"stock": 1}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Conflict")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ProductHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteProduct(gomock.Any(), id).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/products/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 while stock is reserved", func() {
		s.mockCommands.EXPECT().DeleteProduct(gomock.Any(), id).Return(commands.ErrProductReserved).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/products/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Conflict")
	})
}

// ================================================================================
// TestStockOperations
// ================================================================================

func (s *ProductHandlerTestSuite) TestStockOperations() {
	productID := uuid.New()
	reqBody := map[string]any{"items": []map[string]any{{"product_id": productID.String(), "quantity": 6}}}
	expected := []commands.StockItem{{ProductID: productID, Quantity: 6}}

	s.Run("success: each operation answers 204", func() {
		s.mockCommands.EXPECT().ReserveStock(gomock.Any(), expected).Return(nil).Times(1)
		s.mockCommands.EXPECT().ReleaseStock(gomock.Any(), expected).Return(nil).Times(1)
		s.mockCommands.EXPECT().ConfirmStock(gomock.Any(), expected).Return(nil).Times(1)

		for _, op := range []string{"reserve", "release", "confirm"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/products/stock/"+op, reqBody, "")
			s.Equal(http.StatusNoContent, rec.Code, op)
		}
	})

	s.Run("error: 400 on invalid items", func() {
		bodies := map[string]any{
			"no items":      map[string]any{"items": []any{}},
			"zero quantity": map[string]any{"items": []map[string]any{{"product_id": productID.String(), "quantity": 0}}},
			"no product":    map[string]any{"items": []map[string]any{{"quantity": 1}}},
		}
		for name, body := range bodies {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/products/stock/reserve", body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps stock failures", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"insufficient stock", errs.Wrap(commands.ErrInsufficientStock, "product"), http.StatusConflict, "Insufficient stock"},
			{"concurrent conflict", commands.ErrReservationConflict, http.StatusConflict, "retry"},
			{"unknown product", commands.ErrProductNotFound, http.StatusNotFound, "Not found"},
			{
				"rollback failure",
				&commands.ReservationRollbackError{Cause: commands.ErrInsufficientStock, Rollback: errors.New("db down")},
				http.StatusInternalServerError, "Reservation rollback failed",
			},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ReserveStock(gomock.Any(), expected).Return(tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/products/stock/reserve", reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 409 when releasing more than reserved", func() {
		s.mockCommands.EXPECT().ReleaseStock(gomock.Any(), expected).Return(commands.ErrStockNotReserved).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/products/stock/release", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid stock state")
	})
}
