package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aiotex/weighttracker/internal/auth"
	"github.com/aiotex/weighttracker/internal/avatars"
	"github.com/aiotex/weighttracker/internal/config"
	"github.com/aiotex/weighttracker/internal/db"
	"github.com/aiotex/weighttracker/internal/goals"
	"github.com/aiotex/weighttracker/internal/middleware"
	"github.com/aiotex/weighttracker/internal/misc"
	"github.com/aiotex/weighttracker/internal/telemetry/metrics"
	"github.com/aiotex/weighttracker/internal/telemetry/tracing"
	"github.com/aiotex/weighttracker/internal/users"
	"github.com/aiotex/weighttracker/internal/weights"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	avatarsStore *avatars.DiskStore

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "weighttracker_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "weighttracker-backend", rdb)
	if err != nil {
		return nil, err
	}

	avatarsStore, err := avatars.NewDiskStore(params.Config.AvatarsDiskRootPath)
	if err != nil {
		return nil, fmt.Errorf("new avatars disk store: %w", err)
	}

	return &Server{
		config:       params.Config,
		dbPool:       dbPool,
		avatarsStore: avatarsStore,
		versionInfo:  params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	usersRepo := users.NewRepo(s.dbPool)
	usersHandler := users.NewHandler(usersRepo, s.authService, s.metricsManager)
	usersHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	avatarsHandler := avatars.NewHandler(s.avatarsStore, usersRepo)
	avatarsHandler.SetupRoutes(r)

	weightsRepo := weights.NewRepo(s.dbPool)
	weightsHandler := weights.NewHandler(
		weightsRepo,
		weights.NewAnalyzer(weightsRepo, s.config.AggregationMinSamples),
		s.metricsManager,
	)
	r.HandleFunc("/weights", weightsHandler.HandleUpsert).Methods("POST", "OPTIONS").Name("log-weight")
	r.HandleFunc("/weights", weightsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-weights")
	r.HandleFunc("/weights/latest", weightsHandler.HandleLatest).Methods("GET", "OPTIONS").Name("latest-weight")
	r.HandleFunc("/weights/earliest", weightsHandler.HandleEarliest).Methods("GET", "OPTIONS").Name("earliest-weight")
	r.HandleFunc("/weights/average/{group}", weightsHandler.HandleAverages).Methods("GET", "OPTIONS").Name("weight-averages")
	r.HandleFunc("/weights/graph", weightsHandler.HandleGraph).Methods("GET", "OPTIONS").Name("weight-graph")
	r.HandleFunc("/weights/date/{date}", weightsHandler.HandleGetByDay).Methods("GET", "OPTIONS").Name("get-weight")
	r.HandleFunc("/weights/date/{date}", weightsHandler.HandleDeleteByDay).Methods("DELETE", "OPTIONS").Name("delete-weight")

	goalsHandler := goals.NewHandler(goals.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/goal", goalsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-goal")
	r.HandleFunc("/goal", goalsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goal", goalsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-goal")
	r.HandleFunc("/goal", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-goal")
	r.HandleFunc("/goal/pace", goalsHandler.HandlePace).Methods("GET", "OPTIONS").Name("goal-pace")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
