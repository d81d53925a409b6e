package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"careerpath-backend/internal/aigateway"
	"careerpath-backend/internal/analytics"
	"careerpath-backend/internal/cv"
	"careerpath-backend/internal/events"
	"careerpath-backend/internal/jobs"
	"careerpath-backend/internal/profiles"
	"careerpath-backend/internal/recommendations"
	"careerpath-backend/internal/services/health"
	"careerpath-backend/internal/shared/config"
	"careerpath-backend/internal/shared/server"
	"careerpath-backend/internal/shared/storage/db"
	"careerpath-backend/internal/shared/storage/object"
	localstore "careerpath-backend/internal/shared/storage/object/local"
	s3store "careerpath-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	ProfileDB   *sql.DB
	AnalyticsDB *sql.DB
	Store       object.ObjectStore
	Bus         *events.Bus
	Gateway     aigateway.Client

	ProfileRepo   profiles.Repo
	AnalyticsRepo analytics.Repo
	CVRepo        cv.Repo
	JobsRepo      jobs.Repo

	ProfileService        *profiles.Service
	CVService             *cv.Service
	RecommendationService *recommendations.Service
	HealthService         *health.Service

	ProfileHandler        *profiles.Handler
	CVHandler             *cv.Handler
	RecommendationHandler *recommendations.Handler
}

// Build prepares shared dependencies and wires the router. Each store
// connects independently; in dev a missing or unreachable database falls
// back to in-memory repositories so the API stays usable.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	profileDB, err := buildStoreDB(ctx, cfg.Env, "profile", cfg.ProfileDatabaseURL, db.MigrateProfileStore)
	if err != nil {
		return nil, err
	}
	analyticsDB, err := buildStoreDB(ctx, cfg.Env, "analytics", cfg.AnalyticsDatabaseURL, db.MigrateAnalyticsStore)
	if err != nil {
		return nil, err
	}

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:      cfg,
		ProfileDB:   profileDB,
		AnalyticsDB: analyticsDB,
		Store:       store,
	}

	if profileDB != nil {
		app.ProfileRepo = &profiles.PGRepo{DB: profileDB}
	} else {
		app.ProfileRepo = profiles.NewMemoryRepo()
	}

	if analyticsDB != nil {
		app.AnalyticsRepo = &analytics.PGRepo{DB: analyticsDB}
		app.CVRepo = &cv.PGRepo{DB: analyticsDB}
		app.JobsRepo = &jobs.PGRepo{DB: analyticsDB}
	} else {
		app.AnalyticsRepo = analytics.NewMemoryRepo()
		app.CVRepo = cv.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
	}

	app.Bus = events.NewBus()
	app.Bus.Subscribe(analytics.NewSyncHandler(app.AnalyticsRepo))

	if cfg.AI.BaseURL != "" {
		app.Gateway = aigateway.New(cfg.AI)
	} else {
		log.Printf("bootstrap: AI_BASE_URL empty; extraction and recommendations disabled")
	}

	app.ProfileService = profiles.NewService(app.ProfileRepo, app.Bus)
	app.CVService = cv.NewService(app.CVRepo, app.AnalyticsRepo, app.Gateway, app.Store)
	app.RecommendationService = recommendations.NewService(app.AnalyticsRepo, app.JobsRepo, app.Gateway)
	app.HealthService = health.NewService(profileDB, analyticsDB)

	app.ProfileHandler = profiles.NewHandler(app.ProfileService)
	app.CVHandler = cv.NewHandler(app.CVService)
	app.RecommendationHandler = recommendations.NewHandler(app.RecommendationService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		ProfileHandler:        app.ProfileHandler,
		CVHandler:             app.CVHandler,
		RecommendationHandler: app.RecommendationHandler,
		Health:                app.HealthService,
	})

	return app, nil
}

// Close releases the app's long-lived resources.
func (a *App) Close() {
	if a.Bus != nil {
		a.Bus.Close()
	}
	if a.ProfileDB != nil {
		a.ProfileDB.Close()
	}
	if a.AnalyticsDB != nil {
		a.AnalyticsDB.Close()
	}
}

func buildStoreDB(ctx context.Context, env, name, url string, migrate func(context.Context, *sql.DB) error) (*sql.DB, error) {
	if strings.TrimSpace(url) == "" {
		if isDevLike(env) {
			log.Printf("bootstrap: %s store URL empty; using in-memory repositories", name)
			return nil, nil
		}
		return nil, fmt.Errorf("%s store database URL is required", name)
	}

	conn, err := db.Connect(ctx, url, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(env) {
			log.Printf("bootstrap: %s store unreachable, falling back to memory: %v", name, err)
			return nil, nil
		}
		return nil, fmt.Errorf("connect %s store: %w", name, err)
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		if isDevLike(env) {
			log.Printf("bootstrap: %s store migrations failed, falling back to memory: %v", name, err)
			return nil, nil
		}
		return nil, fmt.Errorf("migrate %s store: %w", name, err)
	}
	return conn, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: s3 archive init failed, falling back to local: %v", err)
				return localstore.New(cfg.LocalStoreDir), nil
			}
			return nil, fmt.Errorf("init s3 archive: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local", "staging", "":
		return true
	default:
		return false
	}
}
