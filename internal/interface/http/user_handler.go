package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-notes-api/internal/application"
	"github.com/oksasatya/go-notes-api/pkg/response"
	"github.com/oksasatya/go-notes-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/users. Field-level problems answer 422 with a
// specific message; a taken username answers 400.
func (h *UserHandler) Register(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), raw)
	if err != nil {
		var ve *application.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusUnprocessableEntity, ve.Message, nil)
		case errors.Is(err, application.ErrUsernameTaken):
			response.Error(c, http.StatusBadRequest, "username already exists", nil)
		default:
			h.Logger.WithError(err).Error("user registration failed")
			response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	response.Created(c, c.Request.URL.Path+"/"+u.ID, u.Public())
}

// Login handles POST /api/login. Bad credentials of any kind answer a
// single generic 401; missing fields fail fast with 400 before any store
// access.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"authToken": token})
}
