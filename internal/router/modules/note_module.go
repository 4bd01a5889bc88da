package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/notesapp/notes-api/internal/container"
	"github.com/notesapp/notes-api/internal/domain/repository"
	handlers "github.com/notesapp/notes-api/internal/interface/http"
	"github.com/notesapp/notes-api/internal/interface/middleware"
)

// NoteModule wires the note endpoints. Everything here sits behind the
// bearer-token identity resolver.
type NoteModule struct {
	Handler *handlers.NoteHandler
	Users   repository.UserRepository
}

func NewNoteModule(h *handlers.NoteHandler, users repository.UserRepository) *NoteModule {
	return &NoteModule{Handler: h, Users: users}
}

func (m *NoteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	{
		auth.GET("/notes", m.Handler.List)
		auth.POST("/notes", m.Handler.Create)
		auth.GET("/notes/:id", m.Handler.Get)
		auth.PUT("/notes/:id", m.Handler.Update)
		auth.DELETE("/notes/:id", m.Handler.Delete)
		auth.POST("/notes/:id/share", m.Handler.Share)
		auth.GET("/search", m.Handler.Search)
	}
}
