package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-notes-api/internal/interface/http"
)

// UserModule wires the public credential endpoints.
// POST /api/users — registration
// POST /api/login — credential verification + token issuance

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
}
