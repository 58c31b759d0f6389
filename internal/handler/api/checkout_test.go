//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"puente-core/internal/domain/checkout"
	"puente-core/internal/handler/api"
	resdto "puente-core/internal/handler/dto/response"
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

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockCheckoutQueries
	handler      *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCheckoutQueries(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/checkout", s.handler.Start)
	s.router.GET("/checkout/:id", s.handler.Get)
	s.router.POST("/checkout/:id/payment-outcome", s.handler.PaymentOutcome)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

// ================================================================================
// TestStart
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestStart() {
	url := "/checkout"
	b := builder.NewCheckoutBuilder()
	reqBody := b.BuildStartRequestDTO()
	saga := b.BuildAwaitingPayment(uuid.New())
	view := b.BuildView(checkout.StatusAwaitingPayment)
	view.ID = saga.ID()

	s.Run("success: 201 for a new checkout", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.StartCheckoutInput) (*commands.StartCheckoutResult, error) {
				s.Equal("key-1", in.IdempotencyKey)
				s.Equal(b.SellerID, in.SellerID)
				s.Equal(b.Items, in.Items)
				return &commands.StartCheckoutResult{Saga: saga}, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), saga.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "key-1"})

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(saga.ID().String(), body.ID)
		s.Equal(string(checkout.StatusAwaitingPayment), body.Status)
		s.False(body.Replayed)
	})

	s.Run("success: 200 for a replay", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).
			Return(&commands.StartCheckoutResult{Saga: saga, IsReplayed: true}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), saga.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "key-1"})

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
	})

	s.Run("success: key is optional", func() {
		s.mockCommands.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.StartCheckoutInput) (*commands.StartCheckoutResult, error) {
				s.Empty(in.IdempotencyKey)
				return &commands.StartCheckoutResult{Saga: saga}, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), saga.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on invalid request", func() {
		cases := []struct {
			name    string
			body    map[string]any
			headers map[string]string
		}{
			{"missing seller", testutil.DtoMap(s.T(), reqBody, testutil.Field("seller_id", nil)), nil},
			{"no items", testutil.DtoMap(s.T(), reqBody, testutil.Field("items", []any{})), nil},
			{"zero quantity", testutil.DtoMap(s.T(), reqBody, testutil.Field("items",
				[]map[string]any{{"product_id": uuid.NewString(), "quantity": 0}})), nil},
			{"key too long", testutil.DtoMap(s.T(), reqBody), map[string]string{"Idempotency-Key": strings.Repeat("k", 129)}},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, tc.body, tc.headers)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"key reused with another body", commands.ErrIdempotencyMismatch, http.StatusConflict, "Conflict"},
			{"insufficient stock", commands.ErrInsufficientStock, http.StatusConflict, "Insufficient stock"},
			{"unknown product", commands.ErrProductNotFound, http.StatusNotFound, "Not found"},
			{"foreign product", commands.ErrProductNotOwned, http.StatusBadRequest, "Invalid request"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestGet() {
	view := builder.NewCheckoutBuilder().BuildView(checkout.StatusCompleted)

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/checkout/"+view.ID.String(), nil, "")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(string(checkout.StatusCompleted), body.Status)
		s.Len(body.Items, len(view.Items))
	})

	s.Run("error: 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, queries.ErrCheckoutNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/checkout/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestPaymentOutcome
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestPaymentOutcome() {
	view := builder.NewCheckoutBuilder().BuildView(checkout.StatusCompensated)
	url := "/checkout/" + view.ID.String() + "/payment-outcome"

	s.Run("success: records the outcome", func() {
		s.mockCommands.EXPECT().ResolvePayment(gomock.Any(), view.ID, checkout.OutcomeRejected, "card declined").
			Return(nil, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"outcome": "REJECTED", "reason": "card declined"}, "")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(string(checkout.StatusCompensated), body.Status)
	})

	s.Run("error: 400 on unknown or internal outcomes", func() {
		for _, outcome := range []string{"", "ABORTED", "approved", "PENDING"} {
			s.Run("outcome="+outcome, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"outcome": outcome}, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 when a different outcome was recorded first", func() {
		s.mockCommands.EXPECT().ResolvePayment(gomock.Any(), view.ID, checkout.OutcomeApproved, "").
			Return(nil, commands.ErrCheckoutResolved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"outcome": "APPROVED"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Conflict")
	})
}
