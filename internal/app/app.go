package app

import (
	"inventra-backend/internal/assets"
	"inventra-backend/internal/auth"
	"inventra-backend/internal/config"
	"inventra-backend/internal/constants"
	"inventra-backend/internal/database"
	"inventra-backend/internal/health"
	"inventra-backend/internal/importer"
	"inventra-backend/internal/lifecycle"
	"inventra-backend/internal/maintenance"
	"inventra-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and routes, and
// returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	Register(app, db, rdb, cfg, sessionCfg)
	return app, db, rdb, nil
}

// Register wires services, handlers and routes onto app. Split out of
// CreateApp so tests can mount the same routes on injected dependencies.
func Register(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config, sessionCfg middleware.SessionConfig) {
	healthHandlers := &health.Handlers{Rdb: rdb}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			healthHandlers.DB = sqlDB
		}
	}
	app.Get("/", healthHandlers.Root)
	app.Get("/health/json", healthHandlers.JSON)

	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{UserFinder: userFinder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	assetHandlers := &assets.Handlers{Service: &assets.Service{DB: db}}
	importHandlers := &importer.Handlers{Service: &importer.Service{DB: db, TagPrefix: cfg.AssetTagPrefix}}
	lifecycleHandlers := &lifecycle.Handlers{Service: &lifecycle.Service{DB: db}}
	maintenanceHandlers := &maintenance.Handlers{Service: &maintenance.Service{DB: db, Rdb: rdb}}

	api := app.Group("/api/v1", middleware.RequireAuth())

	assetGroup := api.Group("/assets")
	assetGroup.Get("/", middleware.AuthorizePermission(constants.ViewAssets), assetHandlers.List)
	assetGroup.Post("/import", middleware.AuthorizePermission(constants.ImportAssets), importHandlers.Import)
	assetGroup.Post("/", middleware.AuthorizePermission(constants.ManageAssets), assetHandlers.Create)
	assetGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewAssets), assetHandlers.Get)
	assetGroup.Patch("/:id", middleware.AuthorizePermission(constants.ManageAssets), assetHandlers.Update)
	assetGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageAssets), assetHandlers.Delete)
	assetGroup.Get("/:id/assignments", middleware.AuthorizePermission(constants.ViewAssets), lifecycleHandlers.ListForAsset)
	assetGroup.Get("/:id/maintenance", middleware.AuthorizePermission(constants.ViewAssets), maintenanceHandlers.ListForAsset)

	assignmentGroup := api.Group("/assignments")
	assignmentGroup.Post("/", middleware.AuthorizePermission(constants.AssignAsset), lifecycleHandlers.Assign)
	assignmentGroup.Post("/:id/return", middleware.AuthorizePermission(constants.TransitionCustody), lifecycleHandlers.Return)
	assignmentGroup.Post("/:id/lost", middleware.AuthorizePermission(constants.TransitionCustody), lifecycleHandlers.MarkLost)
	assignmentGroup.Post("/:id/damaged", middleware.AuthorizePermission(constants.TransitionCustody), lifecycleHandlers.MarkDamaged)

	maintenanceGroup := api.Group("/maintenance")
	maintenanceGroup.Post("/", middleware.AuthorizePermission(constants.RecordMaintenance), maintenanceHandlers.Create)
	maintenanceGroup.Get("/summary", middleware.AuthorizePermission(constants.ViewAssets), maintenanceHandlers.Summary)
}
