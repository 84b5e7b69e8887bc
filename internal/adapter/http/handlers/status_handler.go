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

// StatusHandler exposes the status ledger. Listing seeds the default workflow when the
// ledger is still empty.

type StatusHandler struct {
	ledger      usecase.IStatusLedgerUseCase
	transitions usecase.IStatusTransitionUseCase
}

func NewStatusHandler(ledger usecase.IStatusLedgerUseCase, transitions usecase.IStatusTransitionUseCase) *StatusHandler {
	return &StatusHandler{ledger: ledger, transitions: transitions}
}

// ListStatuses godoc
// @Summary  List the status ledger
// @Tags     statuses
// @Produce  json
// @Success  200  {array}  response.StatusResponse
// @Router   /statuses [get]
func (h *StatusHandler) ListStatuses(c *gin.Context) {
	ledger, err := h.ledger.EnsureDefaults(c.Request.Context())
	if err != nil {
		respondError(c, mapStatusError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLedger(ledger))
}

// CreateStatus godoc
// @Summary  Add a status to the ledger
// @Tags     statuses
// @Accept   json
// @Produce  json
// @Param    body  body      request.StatusRequest  true  "Status"
// @Success  201   {object}  response.StatusResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  422   {object}  pkg.HTTPError
// @Router   /statuses [post]
func (h *StatusHandler) CreateStatus(c *gin.Context) {
	in, ok := bindStatusInput(c)
	if !ok {
		return
	}
	created, err := h.ledger.Create(c.Request.Context(), in)
	if err != nil {
		log.Printf("[status][handler] create failed name=%s err=%v", in.Name, err)
		respondError(c, mapStatusError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromStatus(created))
}

// UpdateStatus godoc
// @Summary  Replace a status entry
// @Tags     statuses
// @Accept   json
// @Produce  json
// @Param    id    path      string                 true  "Status id"
// @Param    body  body      request.StatusRequest  true  "Status"
// @Success  200   {object}  response.StatusResponse
// @Failure  404   {object}  pkg.HTTPError
// @Failure  422   {object}  pkg.HTTPError
// @Router   /statuses/{id} [put]
func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	in, ok := bindStatusInput(c)
	if !ok {
		return
	}
	updated, err := h.ledger.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		log.Printf("[status][handler] update failed id=%s err=%v", c.Param("id"), err)
		respondError(c, mapStatusError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromStatus(updated))
}

// NextStatus godoc
// @Summary      Next status in the workflow
// @Description  An unknown current status resolves to the first ledger entry.
// @Tags         statuses
// @Produce      json
// @Param        current  query     string  false  "Current status name"
// @Success      200      {object}  response.NextStatusResponse
// @Router       /statuses/next [get]
func (h *StatusHandler) NextStatus(c *gin.Context) {
	current := c.Query("current")
	next, ok, err := h.transitions.NextStatus(c.Request.Context(), current)
	if err != nil {
		respondError(c, mapStatusError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNextStatus(current, next, ok))
}

func bindStatusInput(c *gin.Context) (usecase.StatusInput, bool) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[status][handler] invalid payload err=%v", err)
		respondError(c, errInvalidRequest)
		return usecase.StatusInput{}, false
	}
	in, err := payload.ToInput()
	if err != nil {
		respondError(c, mapStatusError(err))
		return usecase.StatusInput{}, false
	}
	return in, true
}

func mapStatusError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, entities.ErrEndAndCanceledStatus):
		return pkg.NewDomainError("VALIDATION_FAILED", "A status cannot be both end and canceled", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidStatusID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrStatusNotFound):
		return pkg.NewDomainErrorSimple("STATUS_NOT_FOUND", "Status not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
