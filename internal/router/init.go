package router

import (
	"github.com/notesapp/notes-api/internal/application"
	"github.com/notesapp/notes-api/internal/container"
	pginfra "github.com/notesapp/notes-api/internal/infrastructure/postgres"
	handlers "github.com/notesapp/notes-api/internal/interface/http"
	"github.com/notesapp/notes-api/internal/router/modules"
)

// InitModules builds the feature modules from the container singletons
// and registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())
	notes := pginfra.NewNoteRepository(container.GetPGPool())

	authService := application.NewAuthService(users, container.GetJWT(), container.GetLogger())
	noteService := application.NewNoteService(notes, users, container.GetLogger())

	authHandler := handlers.NewAuthHandler(authService, container.GetCookies(), container.GetLogger())
	noteHandler := handlers.NewNoteHandler(noteService, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewNoteModule(noteHandler, users))
}
