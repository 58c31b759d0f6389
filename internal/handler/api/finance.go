package api

import (
	"context"
	"net/http"

	"puente-core/internal/domain/order"
	reqdto "puente-core/internal/handler/dto/request"
	resdto "puente-core/internal/handler/dto/response"
	"puente-core/internal/handler/httperr"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FinanceHandler struct {
	cmds commands.FinanceCommands
	q    queries.FinanceQueries
}

func NewFinanceHandler(cmds commands.FinanceCommands, q queries.FinanceQueries) *FinanceHandler {
	return &FinanceHandler{cmds: cmds, q: q}
}

// @Summary Create order
// @Description Writes the order, its commission and the sale/commission ledger entries in one transaction. Stock must already be reserved.
// @Tags finance
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param request body reqdto.CreateOrderRequest true "Order"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Router /api/orders [post]
func (h *FinanceHandler) CreateOrder(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateOrder(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondOrder(c, http.StatusCreated, result.Order.ID())
}

// @Summary Get order
// @Description Order with items, commission and every ledger entry recorded for it
// @Tags finance
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id} [get]
func (h *FinanceHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondOrder(c, http.StatusOK, id)
}

// @Summary Compensate order
// @Description Marks the order FAILED and reverses its ledger entries. Repeating the call is a no-op.
// @Tags finance
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Order ID"
// @Param request body reqdto.ReasonRequest true "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id}/compensate [post]
func (h *FinanceHandler) CompensateOrder(c *gin.Context) {
	h.terminate(c, h.cmds.CompensateOrder)
}

// @Summary Cancel order
// @Description Buyer-initiated cancellation; reverses the ledger like compensation
// @Tags finance
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Order ID"
// @Param request body reqdto.ReasonRequest true "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id}/cancel [post]
func (h *FinanceHandler) CancelOrder(c *gin.Context) {
	h.terminate(c, h.cmds.CancelOrder)
}

// @Summary Mark order paid
// @Tags finance
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/paid [post]
func (h *FinanceHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.cmds.MarkOrderPaid(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondOrder(c, http.StatusOK, id)
}

// @Summary Generate payment link
// @Tags finance
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.PaymentLinkResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/orders/{id}/payment [post]
func (h *FinanceHandler) GeneratePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	link, err := h.cmds.GeneratePayment(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentLink(link))
}

// @Summary Add funds
// @Description Manual deposit; disabled in production
// @Tags finance
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param request body reqdto.AddFundsRequest true "Deposit"
// @Success 201 {object} resdto.LedgerEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/ledger/deposits [post]
func (h *FinanceHandler) AddFunds(c *gin.Context) {
	var req reqdto.AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	entry, err := h.cmds.AddFunds(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromLedgerEntry(entry))
}

// @Summary List ledger entries
// @Tags finance
// @Produce json
// @Security GatewaySecret
// @Param userId path string true "User ID"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.LedgerListResponse
// @Router /api/ledger/users/{userId}/entries [get]
func (h *FinanceHandler) ListLedger(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user id", nil)
		return
	}
	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}
	views, next, err := h.q.ListLedger(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerPage(views, next))
}

// @Summary User balance
// @Description Sum of credits minus sum of debits
// @Tags finance
// @Produce json
// @Security GatewaySecret
// @Param userId path string true "User ID"
// @Success 200 {object} resdto.BalanceResponse
// @Router /api/ledger/users/{userId}/balance [get]
func (h *FinanceHandler) Balance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user id", nil)
		return
	}
	view, err := h.q.Balance(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBalanceView(view))
}

func (h *FinanceHandler) terminate(c *gin.Context, op func(ctx context.Context, id uuid.UUID, reason string) (*order.Order, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if _, err := op(c.Request.Context(), id, req.Reason); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondOrder(c, http.StatusOK, id)
}

func (h *FinanceHandler) respondOrder(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetOrder(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(status, resdto.FromOrderView(view))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
