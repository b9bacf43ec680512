package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quizstage/quizstage-backend/internal/config"
	"github.com/quizstage/quizstage-backend/internal/handler"
	"github.com/quizstage/quizstage-backend/internal/middleware"
	"github.com/quizstage/quizstage-backend/internal/migration"
	"github.com/quizstage/quizstage-backend/internal/repository"
	"github.com/quizstage/quizstage-backend/internal/routes"
	"github.com/quizstage/quizstage-backend/internal/service"
	pkgcache "github.com/quizstage/quizstage-backend/pkg/cache"
	pkglogger "github.com/quizstage/quizstage-backend/pkg/logger"
	pkgredis "github.com/quizstage/quizstage-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to %s database", cfg.Database.Driver)

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional; without it the published view is served
	// straight from the store.
	var cacheService pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without cache)", err)
		} else {
			cacheService = pkgcache.NewService(redisClient)
			pkglogger.Info("Cache service initialized")
		}
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		pkglogger.Warn("OPENAI_API_KEY not set; generation endpoints will fail")
	}
	generation := service.NewOpenAIGenerationService(
		openai.NewClient(apiKey),
		cfg.OpenAI.QuestionModel,
		cfg.OpenAI.AnswerModel,
	)

	// Repositories
	runRepo := repository.NewRunRepository(db)
	questionRepo := repository.NewStagingQuestionRepository(db)
	answerRepo := repository.NewStagingAnswerRepository(db)
	tagRepo := repository.NewTagRepository(db)
	publishedRepo := repository.NewPublishedRepository(db)

	// Services
	runService := service.NewRunService(runRepo)
	stagingService := service.NewStagingService(db, runRepo, questionRepo, answerRepo, tagRepo, generation)
	syncService := service.NewSyncService(db, runRepo, questionRepo, answerRepo, publishedRepo, cacheService)
	publishedService := service.NewPublishedService(publishedRepo, cacheService)

	// Handlers
	runHandler := handler.NewRunHandler(runService)
	questionHandler := handler.NewQuestionHandler(stagingService)
	answerHandler := handler.NewAnswerHandler(stagingService)
	tagHandler := handler.NewTagHandler(stagingService)
	syncHandler := handler.NewSyncHandler(syncService)
	publishedHandler := handler.NewPublishedHandler(publishedService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RequestLogger())

	routes.Setup(router, runHandler, questionHandler, answerHandler, tagHandler, syncHandler, publishedHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func splitAndTrim(s string, delimiter string) []string {
	parts := strings.Split(s, delimiter)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gormCfg)
	case "mysql":
		db, err = gorm.Open(mysql.Open(cfg.Database.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
