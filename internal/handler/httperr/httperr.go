package httperr

import (
	"net/http"

	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type status struct {
	code    int
	message string
}

// taxonomy is checked in order; the first matching category wins.
var taxonomy = []struct {
	target error
	status status
}{
	{errs.ErrNotFound, status{http.StatusNotFound, "Not found"}},
	{errs.ErrInsufficientStock, status{http.StatusConflict, "Insufficient stock"}},
	{errs.ErrConcurrentReservationConflict, status{http.StatusConflict, "Stock changed concurrently, retry"}},
	{errs.ErrInvalidStockState, status{http.StatusConflict, "Invalid stock state"}},
	{errs.ErrInvalidOrderState, status{http.StatusConflict, "Invalid order state"}},
	{errs.ErrConflict, status{http.StatusConflict, "Conflict"}},
	{errs.ErrPaymentProvider, status{http.StatusBadGateway, "Payment provider error"}},
	{errs.ErrForbidden, status{http.StatusForbidden, "Forbidden"}},
	{errs.ErrValidation, status{http.StatusBadRequest, "Invalid request"}},
}

// AbortWithDomainError maps a usecase error onto its HTTP status.
func AbortWithDomainError(c *gin.Context, err error) {
	var rollbackErr *commands.ReservationRollbackError
	if errs.As(err, &rollbackErr) {
		AbortWithError(c, http.StatusInternalServerError, err, "Reservation rollback failed", gin.H{
			"cause":    rollbackErr.Cause.Error(),
			"rollback": rollbackErr.Rollback.Error(),
		})
		return
	}

	var joined interface{ Unwrap() []error }
	if errs.As(err, &joined) && len(joined.Unwrap()) > 1 {
		abortWithItemErrors(c, err, joined.Unwrap())
		return
	}

	if st, ok := classify(err); ok {
		AbortWithError(c, st.code, err, st.message, err.Error())
		return
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func classify(err error) (status, bool) {
	for _, t := range taxonomy {
		if errs.Is(err, t.target) {
			return t.status, true
		}
	}
	return status{}, false
}

// abortWithItemErrors answers a batch where items failed independently. Every
// failure is listed; the status is the most severe one, with not found ranked
// below the others since the remaining items were still applied.
func abortWithItemErrors(c *gin.Context, err error, parts []error) {
	chosen := status{http.StatusNotFound, "Not found"}
	rank := -1
	detail := make([]string, len(parts))
	for i, part := range parts {
		detail[i] = part.Error()

		st, ok := classify(part)
		r := 1
		switch {
		case !ok:
			st, r = status{http.StatusInternalServerError, "Internal server error"}, 2
		case st.code == http.StatusNotFound:
			r = 0
		}
		if r > rank {
			chosen, rank = st, r
		}
	}
	AbortWithError(c, chosen.code, err, chosen.message, detail)
}
