package handlers

import (
	"errors"
	"log"
	"net/http"

	request "workorder_invoicing/internal/adapter/http/dto/request"
	response "workorder_invoicing/internal/adapter/http/dto/response"
	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

// WorkOrderHandler handles the work order lifecycle: creation, advance, cancel, archive
// and invoicing.

type WorkOrderHandler struct {
	workOrders  usecase.IWorkOrderUseCase
	transitions usecase.IStatusTransitionUseCase
	invoices    usecase.IInvoiceUseCase
}

func NewWorkOrderHandler(workOrders usecase.IWorkOrderUseCase, transitions usecase.IStatusTransitionUseCase, invoices usecase.IInvoiceUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{workOrders: workOrders, transitions: transitions, invoices: invoices}
}

// CreateWorkOrder godoc
// @Summary      Create a work order
// @Description  Allocates the next invoice number of the customer class and sets the initial status.
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateWorkOrderRequest  true  "Work order"
// @Success      201   {object}  response.WorkOrderResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Failure      503   {object}  pkg.HTTPError
// @Router       /work-orders [post]
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var payload request.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[work-order][handler] invalid payload err=%v", err)
		respondError(c, errInvalidRequest)
		return
	}

	created, err := h.workOrders.Create(c.Request.Context(), payload.ToNewWorkOrder())
	if err != nil {
		log.Printf("[work-order][handler] create failed err=%v", err)
		respondError(c, mapWorkOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromWorkOrder(created))
}

// GetWorkOrder godoc
// @Summary  Get a work order
// @Tags     work-orders
// @Produce  json
// @Param    id   path      string  true  "Work order id"
// @Success  200  {object}  response.WorkOrderResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /work-orders/{id} [get]
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	w, err := h.workOrders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapWorkOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(w))
}

// ListActive godoc
// @Summary      Active dashboard
// @Description  Work orders that are neither archived nor canceled, newest first.
// @Tags         work-orders
// @Produce      json
// @Param        customer_class  query     string  false  "corporate or individual"
// @Param        status          query     string  false  "Status name"
// @Param        search          query     string  false  "Free text"
// @Success      200             {array}   response.WorkOrderResponse
// @Failure      400             {object}  pkg.HTTPError
// @Router       /work-orders/active [get]
func (h *WorkOrderHandler) ListActive(c *gin.Context) {
	filter := entities.DashboardFilter{Status: c.Query("status"), Search: c.Query("search")}
	if raw := c.Query("customer_class"); raw != "" {
		class, ok := entities.ParseCustomerClass(raw)
		if !ok {
			respondError(c, errInvalidRequest.WithDetail("customer_class", raw))
			return
		}
		filter.CustomerClass = class
	}

	wos, err := h.workOrders.ListActive(c.Request.Context(), filter)
	if err != nil {
		respondError(c, mapWorkOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrders(wos))
}

// AdvanceWorkOrder godoc
// @Summary      Advance to the next status
// @Description  When the next status is the end status nothing is written and invoice_review_required is true.
// @Tags         work-orders
// @Produce      json
// @Param        id   path      string  true  "Work order id"
// @Success      200  {object}  response.TransitionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /work-orders/{id}/advance [post]
func (h *WorkOrderHandler) AdvanceWorkOrder(c *gin.Context) {
	id := c.Param("id")
	res, err := h.transitions.Advance(c.Request.Context(), id)
	if err != nil {
		log.Printf("[work-order][handler] advance failed id=%s err=%v", id, err)
		respondError(c, mapWorkOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromTransition(res))
}

// CancelWorkOrder godoc
// @Summary  Cancel a work order
// @Tags     work-orders
// @Accept   json
// @Produce  json
// @Param    id    path      string                           true   "Work order id"
// @Param    body  body      request.CancelWorkOrderRequest  false  "Canceled status name"
// @Success  200   {object}  response.WorkOrderResponse
// @Failure  409   {object}  pkg.HTTPError
// @Failure  422   {object}  pkg.HTTPError
// @Router   /work-orders/{id}/cancel [post]
func (h *WorkOrderHandler) CancelWorkOrder(c *gin.Context) {
	var payload request.CancelWorkOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, errInvalidRequest)
			return
		}
	}

	w, err := h.workOrders.Cancel(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		respondError(c, mapWorkOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(w))
}

// ArchiveWorkOrder godoc
// @Summary  Archive a work order
// @Tags     work-orders
// @Produce  json
// @Param    id   path      string  true  "Work order id"
// @Success  200  {object}  response.WorkOrderResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /work-orders/{id}/archive [post]
func (h *WorkOrderHandler) ArchiveWorkOrder(c *gin.Context) {
	w, err := h.workOrders.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapWorkOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrder(w))
}

// IssueInvoice godoc
// @Summary      Issue the invoice of a work order
// @Description  Snapshots the work order into an invoice and completes it.
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Work order id"
// @Param        body  body      request.IssueInvoiceRequest  true  "Payment method"
// @Success      201   {object}  response.InvoiceResponse
// @Failure      409   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /work-orders/{id}/invoice [post]
func (h *WorkOrderHandler) IssueInvoice(c *gin.Context) {
	id := c.Param("id")
	var payload request.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	inv, err := h.invoices.Issue(c.Request.Context(), id, payload.PaymentMethodID, payload.Notes)
	if err != nil {
		log.Printf("[invoice][handler] issue failed work_order_id=%s err=%v", id, err)
		respondError(c, mapInvoiceError(err))
		return
	}
	log.Printf("[invoice][handler] issued work_order_id=%s invoice_id=%s number=%s", id, inv.ID, inv.InvoiceNumber)
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

func mapWorkOrderError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidWorkOrderID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "Work order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkOrderTerminal):
		return pkg.NewDomainErrorSimple("WORK_ORDER_TERMINAL", "Work order is completed or canceled", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoFurtherTransition):
		return pkg.NewDomainErrorSimple("NO_FURTHER_TRANSITION", "No further status transition", http.StatusConflict)
	case errors.Is(err, usecase.ErrWorkOrderHasNoNumber):
		return pkg.NewDomainErrorSimple("WORK_ORDER_WITHOUT_NUMBER", "Work order has no invoice number", http.StatusConflict)
	default:
		return internalError(err)
	}
}
