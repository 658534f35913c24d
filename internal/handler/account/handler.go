package account

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avargas/rentals-api/internal/middleware"
	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/service/account"
	"github.com/avargas/rentals-api/internal/service/auth"
	"github.com/avargas/rentals-api/internal/service/quota"
	"github.com/avargas/rentals-api/pkg/errors"
	"github.com/avargas/rentals-api/pkg/httputil"
)

type Handler struct {
	auth     auth.AuthService
	accounts account.AccountService
	quota    *quota.Service
}

func NewHandler(authSvc auth.AuthService, accounts account.AccountService, quotaSvc *quota.Service) *Handler {
	return &Handler{
		auth:     authSvc,
		accounts: accounts,
		quota:    quotaSvc,
	}
}

// RegisterRoutes mounts the self-service routes for the authenticated
// account.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/me")
	{
		me.GET("", h.Me)
		me.GET("/usage", h.Usage)
	}
}

// RegisterAdminRoutes mounts account administration.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("", h.List)
		accounts.GET("/:id", h.Get)
		accounts.PUT("/:id", h.Update)
	}
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

// Usage returns the dashboard counts: per-kind usage against the plan caps.
func (h *Handler) Usage(c *gin.Context) {
	usage, err := h.quota.Usage(c.Request.Context(), middleware.PrincipalFrom(c).UserID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, usage)
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.accounts.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("account", err))
		return
	}

	user, err := h.accounts.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("account", err))
		return
	}

	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err.Error())
		return
	}

	user, err := h.accounts.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}
