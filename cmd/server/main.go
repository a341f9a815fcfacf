package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/middleware"
	v1 "github.com/Habid-Marun/getsemani-vivo/internal/api/v1"
	"github.com/Habid-Marun/getsemani-vivo/internal/metrics"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository/postgres"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
	"github.com/Habid-Marun/getsemani-vivo/internal/storage"
)

type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`
	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
	Database struct {
		URL         string        `mapstructure:"url"`
		MaxConns    int           `mapstructure:"max_conns"`
		PingTimeout time.Duration `mapstructure:"ping_timeout"`
	} `mapstructure:"database"`
	Log struct {
		Level    string `mapstructure:"level"`
		Encoding string `mapstructure:"encoding"`
	} `mapstructure:"log"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		JWTSecretFile string        `mapstructure:"jwt_secret_file"`
		TokenTTL      time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
	Uploads struct {
		Dir     string `mapstructure:"dir"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"uploads"`
	CORS struct {
		AllowOrigins []string `mapstructure:"allow_origins"`
	} `mapstructure:"cors"`
}

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "healthcheck":
			os.Exit(runHealthcheck())
		case "migrate":
			if err := runMigrateCommand(); err != nil {
				fmt.Fprintln(os.Stderr, sanitizeCLIError(err))
				os.Exit(1)
			}
			return
		case "create-admin":
			if err := runCreateAdminCommand(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, sanitizeCLIError(err))
				os.Exit(1)
			}
			return
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer logger.Sync() //nolint:errcheck

	isDebugMode := strings.EqualFold(cfg.App.Env, "development")
	if !isDebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPool, err := newDBPool(context.Background(), cfg)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	defer dbPool.Close()

	uploadStore, err := storage.NewUploadStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		logger.Fatal("init upload store failed", zap.Error(err))
	}

	userRepo := postgres.NewUserRepository(dbPool)
	businessRepo := postgres.NewBusinessRepository(dbPool)
	imageRepo := postgres.NewImageRepository(dbPool)
	consumptionRepo := postgres.NewConsumptionRepository(dbPool)

	authSvc := service.NewAuthService(userRepo, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	userSvc := service.NewUserService(userRepo)
	businessSvc := service.NewBusinessService(businessRepo)
	imageSvc := service.NewImageService(imageRepo, businessRepo, uploadStore)
	consumptionSvc := service.NewConsumptionService(consumptionRepo, businessRepo, userRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(buildCORSMiddleware(cfg, isDebugMode))
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.HTTPMetrics())

	router.Static("/uploads", uploadStore.Dir())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Getsemaní Vivo API",
			"version": Version,
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Database.PingTimeout)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"error":  "database unavailable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := router.Group("")
	v1.RegisterAuthRoutes(root, authSvc)
	v1.RegisterBusinessRoutes(root, businessSvc, imageSvc)
	v1.RegisterUserRoutes(root, authSvc, userSvc, consumptionSvc)
	v1.RegisterMyBusinessRoutes(root, authSvc, businessSvc, imageSvc, consumptionSvc)
	v1.RegisterAdminRoutes(root, authSvc, userSvc, businessSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	logger.Info("server started",
		zap.String("addr", srv.Addr),
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("build_time", BuildTime),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			logger.Fatal("server exited unexpectedly", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown server failed", zap.Error(err))
	}
}

func loadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GETSEMANI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "GETSEMANI_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", "GETSEMANI_AUTH_JWT_SECRET", "JWT_SECRET")

	v.SetDefault("app.env", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.ping_timeout", "3s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_secret_file", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.base_url", "/uploads")
	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173"})

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return Config{}, fmt.Errorf("read config file failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config failed: %w", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" && strings.TrimSpace(cfg.Auth.JWTSecretFile) != "" {
		// #nosec G304 -- path is provided by operator config.
		raw, err := os.ReadFile(strings.TrimSpace(cfg.Auth.JWTSecretFile))
		if err != nil {
			return Config{}, fmt.Errorf("read auth.jwt_secret_file failed: %w", err)
		}
		cfg.Auth.JWTSecret = strings.TrimSpace(string(raw))
	}

	if cfg.Database.URL == "" {
		return Config{}, errors.New("database.url is required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return Config{}, errors.New("auth.jwt_secret is required")
	}
	if cfg.Database.MaxConns <= 0 {
		return Config{}, errors.New("database.max_conns must be greater than 0")
	}
	if cfg.Database.PingTimeout <= 0 {
		return Config{}, errors.New("database.ping_timeout must be greater than 0")
	}

	return cfg, nil
}

func newLogger(cfg Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if strings.EqualFold(cfg.App.Env, "development") {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			return nil, fmt.Errorf("invalid log.level: %w", err)
		}
	}
	if cfg.Log.Encoding != "" {
		zapCfg.Encoding = cfg.Log.Encoding
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger failed: %w", err)
	}
	return logger, nil
}

func newDBPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database.url failed: %w", err)
	}

	const maxInt32 = int(^uint32(0) >> 1)
	if cfg.Database.MaxConns > maxInt32 {
		return nil, fmt.Errorf("database.max_conns must be <= %d", maxInt32)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns) // #nosec G115 -- validated upper bound above.

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.PingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	return pool, nil
}

// buildCORSMiddleware allows every origin in development so local frontends
// work out of the box, and the configured list everywhere else.
func buildCORSMiddleware(cfg Config, isDebugMode bool) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Type"},
		MaxAge:        12 * time.Hour,
	}

	if isDebugMode {
		corsCfg.AllowAllOrigins = true
		return cors.New(corsCfg)
	}

	origins := make([]string, 0, len(cfg.CORS.AllowOrigins))
	for _, origin := range cfg.CORS.AllowOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		origins = append(origins, trimmed)
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	corsCfg.AllowOrigins = origins
	corsCfg.AllowCredentials = true
	return cors.New(corsCfg)
}

func runMigrateCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config failed: %w", err)
	}

	migrationDir := "/migrations"
	if _, statErr := os.Stat(migrationDir); statErr != nil {
		migrationDir = "./migrations"
	}

	migrator, err := migrate.New("file://"+migrationDir, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer migrator.Close() //nolint:errcheck

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations failed: %w", err)
	}

	fmt.Println("migrations applied successfully")
	return nil
}

func runCreateAdminCommand(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config failed: %w", err)
	}

	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var email string
	var password string
	var fullName string

	fs.StringVar(&email, "email", "", "admin email")
	fs.StringVar(&password, "password", "", "admin password")
	fs.StringVar(&fullName, "name", "Administrator", "admin full name")

	if err := fs.Parse(args); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return errors.New("a valid email is required")
	}
	if !isStrongPassword(password) {
		return errors.New("password must be >=12 chars and include upper/lowercase letters and digits")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("parse database config failed: %w", err)
	}
	poolCfg.MaxConns = 2

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("connect database failed: %w", err)
	}
	defer pool.Close()

	var existingID int64
	err = pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&existingID)
	if err == nil {
		fmt.Printf("admin user '%s' already exists, skip\n", email)
		return nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("query admin user failed: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	_, err = pool.Exec(
		ctx,
		`INSERT INTO users (email, password_hash, role, full_name, is_active, created_at, updated_at)
		 VALUES ($1, $2, 'admin', $3, TRUE, NOW(), NOW())`,
		email,
		string(hashed),
		strings.TrimSpace(fullName),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			fmt.Printf("admin user '%s' already exists, skip\n", email)
			return nil
		}
		return fmt.Errorf("create admin failed: %w", err)
	}

	fmt.Printf("admin user '%s' created successfully\n", email)
	return nil
}

func isStrongPassword(password string) bool {
	if len(password) < 12 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	return hasLower && hasUpper && hasDigit
}

func isValidEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	return regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`).MatchString(trimmed)
}

func runHealthcheck() int {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get("http://localhost:8080/health/ready")
	if err != nil {
		return 1
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}

func sanitizeCLIError(err error) string {
	if err == nil {
		return ""
	}

	text := strings.ReplaceAll(err.Error(), "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.TrimSpace(text)
}
