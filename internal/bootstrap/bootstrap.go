package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rahuldey/uniroutine/internal/app/controllers"
	appMigrations "github.com/rahuldey/uniroutine/internal/app/migrations"
	appRepos "github.com/rahuldey/uniroutine/internal/app/repositories"
	appRoutes "github.com/rahuldey/uniroutine/internal/app/routes"
	appServices "github.com/rahuldey/uniroutine/internal/app/services"
	"github.com/rahuldey/uniroutine/internal/config"
	"github.com/rahuldey/uniroutine/internal/db"
	appMiddleware "github.com/rahuldey/uniroutine/internal/middleware"
	pkgAuth "github.com/rahuldey/uniroutine/internal/pkg/auth"
	"github.com/rahuldey/uniroutine/internal/pkg/email"
	"github.com/rahuldey/uniroutine/internal/pkg/logger"
	"github.com/rahuldey/uniroutine/internal/pkg/realtime"
	"github.com/rahuldey/uniroutine/internal/pkg/validation"
	"github.com/rahuldey/uniroutine/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RoutineService       *appServices.RoutineService
	DepartmentService    *appServices.DepartmentService
	CourseService        *appServices.CourseService
	FacultyService       *appServices.FacultyService
	RoomService          *appServices.RoomService
	AuthService          *appServices.AuthService
	AuthController       *appControllers.AuthController
	RoutineController    *appControllers.RoutineController
	DepartmentController *appControllers.DepartmentController
	CourseController     *appControllers.CourseController
	FacultyController    *appControllers.FacultyController
	RoomController       *appControllers.RoomController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Hub                  *realtime.Hub
	RealtimeHandler      *realtime.Handler
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failure is not fatal; the API still works for existing data.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// realtime hub.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExpiry(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	mailer := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.Hub = realtime.NewHub(lgr)
	deps.RealtimeHandler = realtime.NewHandler(deps.Hub, lgr)

	deps.RoutineService = appServices.NewRoutineService(
		deps.Repos.CourseRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.FacultyRepository,
		deps.Repos.RoomRepository,
		deps.Repos.RoutineRepository,
		deps.Hub,
		lgr,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository, deps.Repos.RoutineRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.DepartmentRepository, deps.Repos.RoutineRepository)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository, deps.Repos.DepartmentRepository, deps.Repos.RoutineRepository)
	deps.RoomService = appServices.NewRoomService(deps.Repos.RoomRepository, deps.Repos.DepartmentRepository, deps.Repos.RoutineRepository)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.PendingUserRepository,
		deps.JWTService,
		mailer,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService)
	deps.RoutineController = appControllers.NewRoutineController(deps.RoutineService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.RoomController = appControllers.NewRoomController(deps.RoomService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterCustomValidators(v); err != nil {
			lgr.Error().Err(err).Msg("Failed to register custom validators")
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(os.Getenv("CORS_ORIGIN")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.RoutineController,
		deps.DepartmentController,
		deps.CourseController,
		deps.FacultyController,
		deps.RoomController,
		deps.RealtimeHandler,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
