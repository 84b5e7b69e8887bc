package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	response "workorder_invoicing/internal/adapter/http/dto/response"
	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/infrastructure/report"
	"workorder_invoicing/internal/usecase"
	"workorder_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

// AuditHandler serves the numbering audit and the counter maintenance endpoints.

type AuditHandler struct {
	usecase usecase.IAuditUseCase
}

func NewAuditHandler(uc usecase.IAuditUseCase) *AuditHandler {
	return &AuditHandler{usecase: uc}
}

// Audit godoc
// @Summary      Invoice numbering audit
// @Description  Reports gaps, duplicates and counter drift per customer class.
// @Tags         audit
// @Produce      json
// @Success      200  {object}  response.AuditResponse
// @Router       /audit [get]
func (h *AuditHandler) Audit(c *gin.Context) {
	rep, err := h.usecase.Audit(c.Request.Context())
	if err != nil {
		respondError(c, mapAuditError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuditReport(rep))
}

// ExportAudit godoc
// @Summary  Download the numbering audit
// @Tags     audit
// @Produce  text/csv
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    format  query  string  false  "csv (default) or xlsx"
// @Success  200
// @Failure  400  {object}  pkg.HTTPError
// @Router   /audit/export [get]
func (h *AuditHandler) ExportAudit(c *gin.Context) {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, errInvalidRequest.WithDetail("format", c.Query("format")))
		return
	}
	rep, err := h.usecase.Audit(c.Request.Context())
	if err != nil {
		respondError(c, mapAuditError(err))
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", "attachment; filename="+format.Filename())
	c.Status(http.StatusOK)
	if err := report.Write(c.Writer, format, rep); err != nil {
		log.Printf("[audit][handler] export failed format=%s err=%v", format, err)
	}
}

// ResyncCounter godoc
// @Summary      Resync an invoice counter
// @Description  Sets the counter of the class to the highest assigned number.
// @Tags         audit
// @Produce      json
// @Param        customer_class  path      string  true  "corporate or individual"
// @Success      200             {object}  response.CounterResponse
// @Failure      400             {object}  pkg.HTTPError
// @Router       /audit/counters/{customer_class}/resync [post]
func (h *AuditHandler) ResyncCounter(c *gin.Context) {
	class, ok := entities.ParseCustomerClass(c.Param("customer_class"))
	if !ok {
		respondError(c, errInvalidRequest.WithDetail("customer_class", c.Param("customer_class")))
		return
	}
	counter, err := h.usecase.ResyncCounter(c.Request.Context(), class)
	if err != nil {
		log.Printf("[audit][handler] resync failed class=%s err=%v", class, err)
		respondError(c, mapAuditError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCounter(counter))
}

// FindByNumber godoc
// @Summary  Work orders holding an invoice number
// @Tags     audit
// @Produce  json
// @Param    customer_class  path      string  true  "corporate or individual"
// @Param    number          path      int     true  "Numeric part of the invoice number"
// @Success  200             {array}   response.WorkOrderResponse
// @Failure  400             {object}  pkg.HTTPError
// @Router   /audit/numbers/{customer_class}/{number} [get]
func (h *AuditHandler) FindByNumber(c *gin.Context) {
	class, ok := entities.ParseCustomerClass(c.Param("customer_class"))
	if !ok {
		respondError(c, errInvalidRequest.WithDetail("customer_class", c.Param("customer_class")))
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		respondError(c, errInvalidRequest.WithDetail("number", c.Param("number")))
		return
	}
	wos, err := h.usecase.FindByNumber(c.Request.Context(), class, number)
	if err != nil {
		respondError(c, mapAuditError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromWorkOrders(wos))
}

// LifecycleSummary godoc
// @Summary  Work order counts by status, class and month
// @Tags     audit
// @Produce  json
// @Success  200  {object}  entities.LifecycleSummary
// @Router   /audit/summary [get]
func (h *AuditHandler) LifecycleSummary(c *gin.Context) {
	s, err := h.usecase.LifecycleSummary(c.Request.Context())
	if err != nil {
		respondError(c, mapAuditError(err))
		return
	}
	c.JSON(http.StatusOK, s)
}

func mapAuditError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	if errors.Is(err, report.ErrUnsupportedFormat) {
		return errInvalidRequest
	}
	return internalError(err)
}
