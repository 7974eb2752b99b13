package routes

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "monitoring_tunggakan/docs"
	"monitoring_tunggakan/internal/adapter/http/handlers"
	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/adapter/http/templates"
	"monitoring_tunggakan/internal/adapter/persistence/repository"
	"monitoring_tunggakan/internal/config"
	"monitoring_tunggakan/internal/infrastructure/database"
	"monitoring_tunggakan/internal/infrastructure/gas"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase"
	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Config    *config.Config
	Gateway   interfaces.IBillingGateway
	Relay     interfaces.IGatewayRelay
	Sessions  usecase.ISessionUseCase
	Cookies   *middleware.SessionCookies
	Templates *template.Template
}

// Run will start the server
func Run() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})
	if cfg.IsProduction() {
		if keys := cfg.InsecureDefaults(); len(keys) > 0 {
			log.Fatal().Strs("keys", keys).Msg("[config][routes] development secrets in production")
		}
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SessionBackend).Msg("[session][routes] session store unavailable")
	}
	defer closeStore()

	tmpl, err := templates.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[http][routes] failed to parse templates")
	}

	if cfg.GASBaseURL == "" {
		log.Warn().Msg("[gas][routes] GAS_BASE_URL is empty; every backend call will fail")
	}
	client := gas.NewClient(cfg.GASBaseURL, cfg.GASTimeout)

	router := NewRouter(Dependencies{
		Config:    cfg,
		Gateway:   client,
		Relay:     client,
		Sessions:  usecase.NewSessionUseCase(client, store),
		Cookies:   middleware.NewSessionCookies(cfg.SessionCookie, cfg.SessionSecret, cfg.SessionTTL, cfg.CSRFSecure),
		Templates: tmpl,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           WithCSRF(cfg, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("[http][routes] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to startup the application")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("[http][routes] shutdown failed")
	}
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)
	router.SetHTMLTemplate(deps.Templates)

	// Swagger documentation endpoint
	if deps.Config.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	addPingRoutes(router)

	api := router.Group("/api", newCORS(deps.Config.AllowedOrigins))
	addRelayRoutes(api, handlers.NewRelayHandler(deps.Relay))

	web := router.Group("", middleware.SessionContext(deps.Cookies, deps.Sessions))
	addWebRoutes(web,
		handlers.NewAuthHandler(deps.Sessions, deps.Cookies),
		handlers.NewDashboardHandler(deps.Gateway),
		handlers.NewListingHandler(deps.Gateway),
		handlers.NewPelangganHandler(deps.Gateway),
	)
	return router
}

// WithCSRF protects the form endpoints. The JSON relay is exempt: it carries
// its own backend credential and is called cross-origin.
func WithCSRF(cfg *config.Config, next http.Handler) http.Handler {
	protect := csrf.Protect(
		[]byte(cfg.CSRFKey),
		csrf.Secure(cfg.CSRFSecure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			r = csrf.UnsafeSkipCheck(r)
		}
		protect.ServeHTTP(w, r)
	})
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// newSessionStore picks the configured backend. The returned func releases it.
func newSessionStore(ctx context.Context, cfg *config.Config) (interfaces.ISessionStore, func(), error) {
	noop := func() {}
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewSessionRedisRepository(client, cfg.SessionTTL), func() { database.CloseRedis(client) }, nil
	case config.SessionBackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return nil, noop, err
		}
		return repository.NewSessionDynamoRepository(ddb, cfg.SessionsTable, cfg.SessionTTL), noop, nil
	case config.SessionBackendFile:
		path := cfg.SessionFile
		if path == "" {
			var err error
			if path, err = repository.DefaultSessionFile(); err != nil {
				return nil, noop, err
			}
		}
		return repository.NewSessionFileRepository(path), noop, nil
	default:
		return repository.NewSessionMemoryRepository(cfg.SessionTTL), noop, nil
	}
}
