package api

import (
	"context"
	"net/http"
	"strconv"

	reqdto "puente-core/internal/handler/dto/request"
	resdto "puente-core/internal/handler/dto/response"
	"puente-core/internal/handler/httperr"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidLimit = errs.Mark(errs.New("limit must be between 1 and 200"), errs.ErrValidation)

type ProductHandler struct {
	cmds commands.InventoryCommands
	q    queries.ProductQueries
}

func NewProductHandler(cmds commands.InventoryCommands, q queries.ProductQueries) *ProductHandler {
	return &ProductHandler{cmds: cmds, q: q}
}

// @Summary Create product
// @Description Create a catalog product with its initial stock
// @Tags products
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param request body reqdto.CreateProductRequest true "Create product request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	id, err := h.cmds.CreateProduct(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Header("Location", "/api/products/"+id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}

// @Summary Get product
// @Tags products
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary List products
// @Description Keyset paginated, newest first
// @Tags products
// @Produce json
// @Security GatewaySecret
// @Param seller_id query string false "Seller ID"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ProductListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var sellerID *uuid.UUID
	if raw := c.Query("seller_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid seller_id", nil)
			return
		}
		sellerID = &id
	}
	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}

	views, next, err := h.q.List(c.Request.Context(), sellerID, cursor, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views, next))
}

// @Summary Update product
// @Description Partial update; stock can never drop below reserved stock
// @Tags products
// @Accept json
// @Produce json
// @Security GatewaySecret
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateProductRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	changes, err := req.ToPatch()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	if err = h.cmds.UpdateProduct(c.Request.Context(), id, changes); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Delete product
// @Description Refused while any stock is reserved
// @Tags products
// @Security GatewaySecret
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.DeleteProduct(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reserve stock
// @Description All or nothing: a failing item releases the items reserved before it
// @Tags stock
// @Accept json
// @Security GatewaySecret
// @Param request body reqdto.StockItemsRequest true "Items"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/products/stock/reserve [post]
func (h *ProductHandler) Reserve(c *gin.Context) {
	h.stockOperation(c, h.cmds.ReserveStock)
}

// @Summary Release reserved stock
// @Tags stock
// @Accept json
// @Security GatewaySecret
// @Param request body reqdto.StockItemsRequest true "Items"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/products/stock/release [post]
func (h *ProductHandler) Release(c *gin.Context) {
	h.stockOperation(c, h.cmds.ReleaseStock)
}

// @Summary Confirm reserved stock
// @Description Spends the reservation once payment succeeded
// @Tags stock
// @Accept json
// @Security GatewaySecret
// @Param request body reqdto.StockItemsRequest true "Items"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/products/stock/confirm [post]
func (h *ProductHandler) Confirm(c *gin.Context) {
	h.stockOperation(c, h.cmds.ConfirmStock)
}

func (h *ProductHandler) stockOperation(c *gin.Context, op func(ctx context.Context, items []commands.StockItem) error) {
	var req reqdto.StockItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := op(c.Request.Context(), req.ToCommand()); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pageParams(c *gin.Context) (*queries.Cursor, int, bool) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > queries.MaxListLimit {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidLimit, "Invalid limit", nil)
			return nil, 0, false
		}
		limit = n
	}

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	return cursor, limit, true
}
