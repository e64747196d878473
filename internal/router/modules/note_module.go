package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-notes-api/internal/container"
	handlers "github.com/oksasatya/go-notes-api/internal/interface/http"
	"github.com/oksasatya/go-notes-api/internal/interface/middleware"
	"github.com/oksasatya/go-notes-api/pkg/helpers"
)

// NoteModule wires the note CRUD endpoints. Every route runs behind the
// bearer-token authenticator; handlers read the principal from context.

type NoteModule struct {
	Handler *handlers.NoteHandler
	JWT     *helpers.JWTManager
}

func NewNoteModule(h *handlers.NoteHandler, jwt *helpers.JWTManager) *NoteModule {
	return &NoteModule{Handler: h, JWT: jwt}
}

func (m *NoteModule) Register(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	notes.Use(middleware.Auth(m.JWT, container.GetLogger()))
	{
		notes.GET("", m.Handler.List)
		notes.GET("/:id", m.Handler.GetByID)
		notes.POST("", m.Handler.Create)
		notes.PUT("/:id", m.Handler.Update)
		notes.DELETE("/:id", m.Handler.Delete)
	}
}
