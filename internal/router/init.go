package router

import (
	"github.com/oksasatya/go-notes-api/internal/application"
	"github.com/oksasatya/go-notes-api/internal/container"
	pginfra "github.com/oksasatya/go-notes-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-notes-api/internal/interface/http"
	"github.com/oksasatya/go-notes-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(pool)
	noteRepo := pginfra.NewNoteRepository(pool)
	folderRepo := pginfra.NewFolderRepository(pool)
	tagRepo := pginfra.NewTagRepository(pool)

	userSvc := application.NewUserService(userRepo, container.GetJWT(), logger)
	noteSvc := application.NewNoteService(noteRepo, folderRepo, tagRepo,
		container.GetRedis(), cfg.NoteCacheTTL, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewNoteModule(handlers.NewNoteHandler(noteSvc, logger), container.GetJWT()))
}
