//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"puente-core/internal/handler/httperr"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abort(t *testing.T, err error) (*httptest.ResponseRecorder, httperr.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	httperr.AbortWithDomainError(c, err)

	var body httperr.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestAbortWithDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"product missing", commands.ErrProductNotFound, http.StatusNotFound, "Not found"},
		{"read side missing", queries.ErrCheckoutNotFound, http.StatusNotFound, "Not found"},
		{"insufficient stock", errs.Wrapf(commands.ErrInsufficientStock, "product %s", "p1"), http.StatusConflict, "Insufficient stock"},
		{"lost race", commands.ErrReservationConflict, http.StatusConflict, "Stock changed concurrently, retry"},
		{"stock not reserved", commands.ErrStockNotReserved, http.StatusConflict, "Invalid stock state"},
		{"order not pending", commands.ErrOrderNotPending, http.StatusConflict, "Invalid order state"},
		{"idempotency mismatch", commands.ErrIdempotencyMismatch, http.StatusConflict, "Conflict"},
		{"provider down", errs.Mark(errors.New("timeout"), errs.ErrPaymentProvider), http.StatusBadGateway, "Payment provider error"},
		{"funding disabled", commands.ErrFundingDisabled, http.StatusForbidden, "Forbidden"},
		{"bad cursor", queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid request"},
		{"joined release failures", errors.Join(commands.ErrStockNotReserved, commands.ErrStockNotReserved), http.StatusConflict, "Invalid stock state"},
		{"joined missing and unreserved", errors.Join(commands.ErrProductNotFound, commands.ErrStockNotReserved), http.StatusConflict, "Invalid stock state"},
		{"joined all missing", errors.Join(commands.ErrProductNotFound, commands.ErrProductNotFound), http.StatusNotFound, "Not found"},
		{"joined with an unclassified failure", errors.Join(commands.ErrStockNotReserved, errors.New("boom")), http.StatusInternalServerError, "Internal server error"},
		{"unclassified", errors.New("disk full"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := abort(t, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, body.Error.Message)
		})
	}
}

func TestAbortWithDomainError_RollbackFailure(t *testing.T) {
	err := &commands.ReservationRollbackError{
		Cause:    commands.ErrInsufficientStock,
		Rollback: errors.New("connection reset"),
	}

	rec, body := abort(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Reservation rollback failed", body.Error.Message)
	detail, ok := body.Detail.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "connection reset", detail["rollback"])
}

func TestAbortWithDomainError_ItemFailuresAreListed(t *testing.T) {
	err := errors.Join(
		errs.Wrapf(commands.ErrProductNotFound, "product %s", "p1"),
		errs.Wrapf(commands.ErrStockNotReserved, "product %s: quantity %d", "p2", 3),
	)

	rec, body := abort(t, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	detail, ok := body.Detail.([]any)
	require.True(t, ok)
	require.Len(t, detail, 2)
	assert.Contains(t, detail[0], "product p1")
	assert.Contains(t, detail[1], "product p2: quantity 3")
}
