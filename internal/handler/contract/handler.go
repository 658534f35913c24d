package contract

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/middleware"
	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/service/contract"
	"github.com/avargas/rentals-api/pkg/errors"
	"github.com/avargas/rentals-api/pkg/httputil"
)

type Handler struct {
	svc contract.ContractService
}

func NewHandler(svc contract.ContractService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/contracts")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err.Error())
		return
	}

	ct, err := h.svc.Create(c.Request.Context(), middleware.PrincipalFrom(c).UserID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, ct)
}

// List returns the owner's contracts enriched with the linked property
// address and tenant name.
func (h *Handler) List(c *gin.Context) {
	contracts, err := h.svc.List(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, contracts)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("contract", err))
		return
	}

	ct, err := h.svc.Get(c.Request.Context(), middleware.PrincipalFrom(c).UserID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, ct)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("contract", err))
		return
	}

	var req model.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err.Error())
		return
	}

	ct, err := h.svc.Update(c.Request.Context(), middleware.PrincipalFrom(c).UserID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, ct)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("contract", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.PrincipalFrom(c).UserID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "contract deleted"})
}
