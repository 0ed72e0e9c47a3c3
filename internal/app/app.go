package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/internal/database"
	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/internal/migrations"
	"github.com/bctala/OPSIGHT/internal/repository"
	"github.com/bctala/OPSIGHT/internal/service"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

// App encapsulates the application dependencies and configuration
type App struct {
	config     *config.Config
	logger     logger.Logger
	db         *sql.DB
	skipEnsure bool

	// Repositories
	userRepo      domain.UserRepository
	operatorRepo  domain.OperatorRepository
	crewRepo      domain.CrewRepository
	shiftRepo     domain.ShiftRepository
	sessionRepo   domain.SessionRepository
	eventRepo     domain.EventRepository
	featureRepo   domain.FeatureRepository
	baselineRepo  domain.BaselineRepository
	detectionRepo domain.DetectionRepository
	alertRepo     domain.AlertRepository
	ctiRepo       domain.CTIRepository
	settingRepo   domain.SettingRepository
	importJobRepo domain.ImportJobRepository

	// Services
	userService     *service.UserService
	baselineService *service.BaselineService
	loaderService   *service.LoaderService
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use an already-open database handle.
// InitDB skips provisioning and schema setup when one is set.
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithSkipEnsure disables the CREATE DATABASE attempt during InitDB, for
// environments where the connecting role cannot create databases
func WithSkipEnsure() AppOption {
	return func(a *App) {
		a.skipEnsure = true
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Initialize runs all initialization steps in order
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	return a.InitServices()
}

// InitDB provisions the database if needed, connects, initializes the schema
// and runs pending migrations
func (a *App) InitDB() error {
	if a.db != nil {
		// Pre-wired handle (tests): no provisioning against it
		return nil
	}

	dbCfg := &a.config.Database
	a.logger.WithField("host", dbCfg.Host).
		WithField("port", dbCfg.Port).
		WithField("user", dbCfg.User).
		WithField("dbname", dbCfg.DBName).
		WithField("sslmode", dbCfg.SSLMode).
		Info("Connecting to database")

	if !a.skipEnsure {
		if err := database.EnsureDatabaseExists(database.GetPostgresDSN(dbCfg), dbCfg.DBName); err != nil {
			return fmt.Errorf("failed to ensure database exists: %w", err)
		}
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}

	if err := database.InitializeDatabase(db, a.config); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	migrationManager := migrations.NewManager(a.logger)
	if err := migrationManager.RunMigrations(context.Background(), a.config, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.db = db
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.userRepo = repository.NewUserRepository(a.db)
	a.operatorRepo = repository.NewOperatorRepository(a.db)
	a.crewRepo = repository.NewCrewRepository(a.db)
	a.shiftRepo = repository.NewShiftRepository(a.db)
	a.sessionRepo = repository.NewSessionRepository(a.db)
	a.eventRepo = repository.NewEventRepository(a.db)
	a.featureRepo = repository.NewFeatureRepository(a.db)
	a.baselineRepo = repository.NewBaselineRepository(a.db)
	a.detectionRepo = repository.NewDetectionRepository(a.db)
	a.alertRepo = repository.NewAlertRepository(a.db)
	a.ctiRepo = repository.NewCTIRepository(a.db)
	a.settingRepo = repository.NewSQLSettingRepository(a.db)
	a.importJobRepo = repository.NewImportJobRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.userRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	a.userService = service.NewUserService(a.userRepo, a.logger)
	a.baselineService = service.NewBaselineService(a.baselineRepo, a.logger)
	a.loaderService = service.NewLoaderService(service.LoaderServiceConfig{
		EventRepo:    a.eventRepo,
		OperatorRepo: a.operatorRepo,
		SessionRepo:  a.sessionRepo,
		ShiftRepo:    a.shiftRepo,
		JobRepo:      a.importJobRepo,
		SettingRepo:  a.settingRepo,
		Loader:       a.config.Loader,
		Logger:       a.logger,
	})

	return nil
}

// Shutdown closes the database connection
func (a *App) Shutdown() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	a.db = nil
	return nil
}

// GetConfig returns the application configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the application logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetDB returns the database handle
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetUserService returns the user service
func (a *App) GetUserService() *service.UserService {
	return a.userService
}

// GetBaselineService returns the baseline service
func (a *App) GetBaselineService() *service.BaselineService {
	return a.baselineService
}

// GetLoaderService returns the telemetry loader
func (a *App) GetLoaderService() *service.LoaderService {
	return a.loaderService
}

// GetImportJobRepository returns the import job repository
func (a *App) GetImportJobRepository() domain.ImportJobRepository {
	return a.importJobRepo
}

// GetSettingRepository returns the setting repository
func (a *App) GetSettingRepository() domain.SettingRepository {
	return a.settingRepo
}
