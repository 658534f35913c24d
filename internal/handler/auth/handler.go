package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/avargas/rentals-api/internal/middleware"
	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/internal/service/auth"
	"github.com/avargas/rentals-api/pkg/errors"
	"github.com/avargas/rentals-api/pkg/httputil"
)

type Handler struct {
	svc auth.AuthService
}

func NewHandler(svc auth.AuthService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes mounts the routes that need an authenticated
// session.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/logout", h.Logout)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err.Error())
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, user)
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err.Error())
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, loginResponse{Token: token, User: user})
}

func (h *Handler) Logout(c *gin.Context) {
	token := middleware.SessionTokenFrom(c)
	if token == "" {
		httputil.RespondWithError(c, errors.Unauthenticated("missing session token"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "logged out"})
}
