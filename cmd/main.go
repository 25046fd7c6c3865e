package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/text/language"

	"github.com/sbilibin2017/pocket-notes/internal/facades"
	"github.com/sbilibin2017/pocket-notes/internal/handlers"
	"github.com/sbilibin2017/pocket-notes/internal/jwt"
	"github.com/sbilibin2017/pocket-notes/internal/kv"
	"github.com/sbilibin2017/pocket-notes/internal/logger"
	"github.com/sbilibin2017/pocket-notes/internal/middlewares"
	"github.com/sbilibin2017/pocket-notes/internal/repositories"
	"github.com/sbilibin2017/pocket-notes/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/pocket-notes/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Storage drivers selectable with STORE_DRIVER.
const (
	driverMemory   = "memory"
	driverFile     = "file"
	driverRedis    = "redis"
	driverPostgres = "postgres"
)

type config struct {
	appHost, appPort, logLevel string

	storeDriver   string
	storeFilePath string

	redisHost      string
	redisPort      int
	redisDB        int
	redisPassword  string
	redisKeyPrefix string

	pgHost     string
	pgPort     int
	pgUser     string
	pgPassword string
	pgDB       string

	imagesDir, galleryDir, cameraDir string

	sortLocale string
	pinHashing string

	jwtSecretKey string
	jwtExpSecond int

	kafkaBrokers []string
	kafkaTopic   string
}

// @title pocket-notes API
// @version 1.0.0
// @description Local API of a PIN-protected personal notes app
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, storage, image, auth and event configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "127.0.0.1")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Storage config
	cfg.storeDriver = getEnv("STORE_DRIVER", driverFile)
	cfg.storeFilePath = getEnv("STORE_FILE_PATH", "data/store.json")

	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.redisKeyPrefix = getEnv("REDIS_KEY_PREFIX", "pocket-notes:")

	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	if cfg.pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")

	// Images
	cfg.imagesDir = getEnv("IMAGES_DIR", "data/images")
	cfg.galleryDir = getEnv("GALLERY_DIR", "")
	cfg.cameraDir = getEnv("CAMERA_DIR", "")

	cfg.sortLocale = getEnv("SORT_LOCALE", "en")
	cfg.pinHashing = getEnv("PIN_HASHING", "plain")

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "86400")); err != nil {
		return
	}

	// Kafka config, publishing is off without brokers
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.kafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "note-events")

	switch cfg.storeDriver {
	case driverMemory, driverFile, driverRedis, driverPostgres:
	default:
		err = fmt.Errorf("unknown STORE_DRIVER %q", cfg.storeDriver)
	}
	return
}

// openStore connects the configured key-value backend. The returned func
// releases it.
func openStore(ctx context.Context, cfg config) (kv.Store, func(), error) {
	switch cfg.storeDriver {
	case driverMemory:
		return kv.NewMemoryStore(), func() {}, nil

	case driverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis connection error: %w", err)
		}
		return kv.NewRedisStore(rdb, cfg.redisKeyPrefix), func() { rdb.Close() }, nil

	case driverPostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection error: %w", err)
		}
		if err := kv.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv.NewPostgresStore(db), func() { db.Close() }, nil

	default:
		fs, err := kv.NewFileStore(cfg.storeFilePath)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// run initializes the logger, storage, services and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.logLevel)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Infow("key-value store ready", "driver", cfg.storeDriver)

	locale, err := language.Parse(cfg.sortLocale)
	if err != nil {
		return fmt.Errorf("invalid SORT_LOCALE %q: %w", cfg.sortLocale, err)
	}

	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.kafkaBrokers...),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.Hash{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(store, repositories.NewPinMatcher(cfg.pinHashing))
	noteRepo := repositories.NewNoteRepository(store)

	// Initialize services
	authService := services.NewAuthService(accountRepo)
	noteService := services.NewNoteService(noteRepo, kafkaWriter, locale)
	imageService := services.NewImageService(
		facades.NewFilesystemPicker(cfg.galleryDir, cfg.cameraDir),
		cfg.imagesDir,
	)

	sess := services.NewSession()
	if _, err := authService.Restore(ctx, sess); err != nil {
		// Start logged out rather than refuse to start.
		log.Warnw("failed to restore session", "error", err)
	}

	tokener := jwt.New(
		jwt.WithSecretKey(cfg.jwtSecretKey),
		jwt.WithExpiration(time.Duration(cfg.jwtExpSecond)*time.Second),
	)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	// Public routes
	r.Post("/signup", handlers.NewSignUpHandler(authService, sess, tokener))
	r.Post("/login", handlers.NewLoginHandler(authService, sess, tokener))
	r.Get("/session", handlers.NewSessionHandler(sess))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokener, sess))
		r.Post("/logout", handlers.NewLogoutHandler(authService, sess))

		r.Get("/notes", handlers.NewListNotesHandler(noteService))
		r.Post("/notes", handlers.NewCreateNoteHandler(noteService))
		r.Get("/notes/{id}", handlers.NewGetNoteHandler(noteService))
		r.Put("/notes/{id}", handlers.NewUpdateNoteHandler(noteService))
		r.Delete("/notes/{id}", handlers.NewDeleteNoteHandler(noteService))

		r.Post("/images/gallery", handlers.NewGalleryImageHandler(imageService))
		r.Post("/images/camera", handlers.NewCameraImageHandler(imageService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
