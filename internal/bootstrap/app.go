package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/admin"
	"planwise-backend/internal/assistant"
	openai "planwise-backend/internal/assistant/openai"
	googleauth "planwise-backend/internal/auth"
	"planwise-backend/internal/billscan"
	"planwise-backend/internal/catalog"
	"planwise-backend/internal/queue"
	"planwise-backend/internal/recommendations"
	"planwise-backend/internal/recommendations/engine"
	"planwise-backend/internal/requests"
	"planwise-backend/internal/services/health"
	"planwise-backend/internal/shared/config"
	"planwise-backend/internal/shared/server"
	"planwise-backend/internal/shared/storage/db"
	"planwise-backend/internal/shared/storage/object"
	localstore "planwise-backend/internal/shared/storage/object/local"
	s3store "planwise-backend/internal/shared/storage/object/s3"
	"planwise-backend/internal/users"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	PlansRepo    catalog.PlansRepo
	RequestsRepo requests.RequestsRepo
	UsersRepo    users.Repo

	CatalogService         *catalog.Service
	RecommendationsService *recommendations.Service
	RequestsService        *requests.Service
	UsersService           *users.Service
	AdminService           *admin.Service
	HealthService          *health.Service

	CatalogHandler         *catalog.Handler
	RecommendationsHandler *recommendations.Handler
	RequestsHandler        *requests.Handler
	BillScanHandler        *billscan.Handler
	AssistantHandler       *assistant.Handler
	UsersHandler           *users.Handler
	AdminHandler           *admin.Handler
	GoogleAuth             *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 app.Config,
		CatalogHandler:         app.CatalogHandler,
		RecommendationsHandler: app.RecommendationsHandler,
		RequestsHandler:        app.RequestsHandler,
		BillScanHandler:        app.BillScanHandler,
		AssistantHandler:       app.AssistantHandler,
		UsersHandler:           app.UsersHandler,
		AdminHandler:           app.AdminHandler,
		GoogleAuth:             app.GoogleAuth,
		Health:                 app.HealthService,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildQueue falls back to an in-process queue so request creation never
// depends on SQS being reachable in dev.
func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("PW_SQS_QUEUE_URL")) == "" {
		return queue.NewMemoryClient(), nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var plansRepo catalog.PlansRepo
	var requestsRepo requests.RequestsRepo
	var usersRepo users.Repo

	if app.DB != nil {
		plansRepo = &catalog.PGRepo{DB: app.DB}
		requestsRepo = &requests.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
	} else {
		memPlans, err := catalog.NewMemoryRepo()
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		plansRepo = memPlans
		requestsRepo = requests.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
	}

	eng := engine.New(engineWeights(app.Config.Recommend))

	assistantClient := assistant.Client(assistant.PlaceholderClient{})
	if app.Config.AssistantProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.AssistantModel)
		if err != nil {
			return err
		}
		assistantClient = client
	}

	catalogSvc := &catalog.Service{Repo: plansRepo}
	recSvc := &recommendations.Service{
		Plans:     plansRepo,
		Engine:    eng,
		Assistant: assistantClient,
	}
	requestsSvc := &requests.Service{
		Repo:  requestsRepo,
		Plans: plansRepo,
		Store: app.Store,
		Queue: app.Queue,
	}
	usersSvc := users.NewService(usersRepo)
	adminSvc := &admin.Service{Requests: requestsRepo, Plans: plansRepo}

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Config.AdminEmails,
		usersSvc,
	)

	app.PlansRepo = plansRepo
	app.RequestsRepo = requestsRepo
	app.UsersRepo = usersRepo
	app.CatalogService = catalogSvc
	app.RecommendationsService = recSvc
	app.RequestsService = requestsSvc
	app.UsersService = usersSvc
	app.AdminService = adminSvc
	app.HealthService = health.NewService(app.DB)
	app.CatalogHandler = catalog.NewHandler(catalogSvc)
	app.RecommendationsHandler = recommendations.NewHandler(recSvc)
	app.RequestsHandler = requests.NewHandler(requestsSvc)
	app.BillScanHandler = billscan.NewHandler()
	app.AssistantHandler = assistant.NewHandler(assistantClient, plansRepo)
	app.UsersHandler = users.NewHandler(usersSvc)
	app.AdminHandler = admin.NewHandler(adminSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

// engineWeights maps the env-tunable subset onto the full scoring policy.
func engineWeights(rc config.RecommendConfig) engine.Weights {
	w := engine.DefaultWeights()
	if rc.TopN > 0 {
		w.TopN = rc.TopN
	}
	if rc.PriceWeight > 0 {
		w.PriceWeight = rc.PriceWeight
	}
	if rc.FeatureWeight > 0 {
		w.FeatureWeight = rc.FeatureWeight
	}
	if rc.CategoryWeight > 0 {
		w.CategoryWeight = rc.CategoryWeight
	}
	if rc.HighScore > 0 {
		w.HighScore = rc.HighScore
	}
	if rc.MediumScore > 0 {
		w.MediumScore = rc.MediumScore
	}
	if rc.MinCompleteness > 0 {
		w.MinCompleteness = rc.MinCompleteness
	}
	return w
}
