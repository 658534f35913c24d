package plan

import (
	"github.com/gin-gonic/gin"

	"github.com/avargas/rentals-api/internal/service/plan"
	"github.com/avargas/rentals-api/pkg/httputil"
)

type Handler struct {
	svc plan.PlanService
}

func NewHandler(svc plan.PlanService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public catalog. The registration page lists
// active plans, so this needs no session.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/plans", h.ListActive)
}

// RegisterAdminRoutes mounts the full catalog, inactive plans included.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/plans", h.ListAll)
}

func (h *Handler) ListActive(c *gin.Context) {
	plans, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, plans)
}

func (h *Handler) ListAll(c *gin.Context) {
	plans, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, plans)
}
