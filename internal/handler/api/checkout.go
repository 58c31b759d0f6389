package api

import (
	"net/http"

	"puente-core/internal/domain/checkout"
	reqdto "puente-core/internal/handler/dto/request"
	resdto "puente-core/internal/handler/dto/response"
	"puente-core/internal/handler/httperr"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxIdempotencyKeyLength = 128

var errIdempotencyKeyTooLong = errs.Mark(errs.New("idempotency key too long"), errs.ErrValidation)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
	q    queries.CheckoutQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, q queries.CheckoutQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, q: q}
}

// @Summary Start checkout
// @Description Reserves stock, creates the order and requests a payment link. Replays with the same Idempotency-Key return the checkout already started.
// @Tags checkout
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body reqdto.StartCheckoutRequest true "Checkout"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout [post]
func (h *CheckoutHandler) Start(c *gin.Context) {
	key := c.GetHeader("Idempotency-Key")
	if len(key) > maxIdempotencyKeyLength {
		httperr.AbortWithError(c, http.StatusBadRequest, errIdempotencyKeyTooLong, "Idempotency-Key too long", nil)
		return
	}
	var req reqdto.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.StartCheckout(c.Request.Context(), req.ToCommand(key))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	h.respond(c, status, result.Saga.ID(), result.IsReplayed)
}

// @Summary Get checkout
// @Tags checkout
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Checkout ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 404 {object} httperr.Response
// @Router /api/checkout/{id} [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, id, false)
}

// @Summary Record payment outcome
// @Description APPROVED confirms stock and marks the order paid; any other outcome compensates the order and releases stock. The first outcome wins.
// @Tags checkout
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Checkout ID"
// @Param request body reqdto.PaymentOutcomeRequest true "Outcome"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/checkout/{id}/payment-outcome [post]
func (h *CheckoutHandler) PaymentOutcome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.PaymentOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	outcome, err := checkout.ParseOutcome(req.Outcome)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid outcome", nil)
		return
	}

	if _, err := h.cmds.ResolvePayment(c.Request.Context(), id, outcome, req.Reason); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respond(c, http.StatusOK, id, false)
}

func (h *CheckoutHandler) respond(c *gin.Context, status int, id uuid.UUID, replayed bool) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res := resdto.FromCheckoutView(view)
	res.Replayed = replayed
	c.JSON(status, res)
}
