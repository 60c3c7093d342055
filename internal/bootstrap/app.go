package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/company_reporting/internal/config"
	"github.com/locvowork/company_reporting/internal/database"
	"github.com/locvowork/company_reporting/internal/handler"
	"github.com/locvowork/company_reporting/internal/logger"
	"github.com/locvowork/company_reporting/internal/service"
)

// Environment loads configuration and logging. It must run before any other
// function of this package.
func Environment(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.DebugLog(ctx, "Environment variables loaded successfully")
	return nil
}

// OpenDB opens the configured database.
func OpenDB(ctx context.Context) (*sql.DB, database.Dialect, error) {
	cfg := config.DefaultEnvConfig
	dbConfig := database.Config{
		Driver:          cfg.DB_DRIVER,
		Path:            cfg.DB_PATH,
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}
	dialect, err := dbConfig.Dialect()
	if err != nil {
		return nil, "", err
	}

	db, err := database.NewDB(ctx, dbConfig)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.InfoLog(ctx, "Database connection established (%s)", dialect)
	return db, dialect, nil
}

// NewReportService wires the pipeline from the loaded configuration.
func NewReportService(db *sql.DB, dialect database.Dialect) (*service.ReportService, *service.WorkbookWriter, error) {
	cfg := config.DefaultEnvConfig
	tmpl, err := service.LoadReportTemplate(cfg.REPORT_TEMPLATE)
	if err != nil {
		return nil, nil, err
	}
	workbook := service.NewWorkbookWriter(db, tmpl)

	svc := service.NewReportService(db, dialect, service.Options{
		DataDir:   cfg.DATA_DIR,
		OutputDir: cfg.OUTPUT_DIR,
		XLSXPath:  cfg.REPORT_XLSX_PATH,
		Workbook:  workbook,
	})
	return svc, workbook, nil
}

// App serves the loaded reports over HTTP.
type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

func NewApp(db *sql.DB) *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e, DB: db}
}

func (a *App) Initialize(ctx context.Context, dialect database.Dialect) error {
	svc, workbook, err := NewReportService(a.DB, dialect)
	if err != nil {
		return err
	}
	reportHandler := handler.NewReportHandler(svc, workbook)

	a.RegisterMiddlewares()
	a.RegisterRoutes(reportHandler)

	logger.InfoLog(ctx, "Routes registered")
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(reportHandler *handler.ReportHandler) {
	reports := a.Echo.Group("/reports")
	reports.GET("", reportHandler.ListHandler)
	reports.GET("/:name", reportHandler.GetHandler)
	reports.GET("/:name/xlsx", reportHandler.WorkbookHandler)
}

// Run serves until the server stops. The database is closed by the caller.
func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}
