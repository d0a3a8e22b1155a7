package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/workouttracker/internal/clock"
	"github.com/2beens/workouttracker/internal/config"
	"github.com/2beens/workouttracker/internal/db"
	"github.com/2beens/workouttracker/internal/exercises"
	"github.com/2beens/workouttracker/internal/middleware"
	"github.com/2beens/workouttracker/internal/notify"
	"github.com/2beens/workouttracker/internal/storage"
	"github.com/2beens/workouttracker/internal/telemetry/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/tracker"
	"github.com/2beens/workouttracker/internal/workout"
	"github.com/2beens/workouttracker/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	tracker     *tracker.Tracker
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	HoneycombTracingEnabled bool

	// optional tracker collaborators, e.g. the console renderer
	Renderer  tracker.Renderer
	Notifier  notify.Notifier
	Player    notify.Player
	Scheduler clock.Scheduler
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	s := &Server{config: cfg}

	if cfg.NeedsRedis() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0,
		})
		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	var extraCollectors []prometheus.Collector
	if cfg.StoreBackend == config.StorePostgres {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			s.closeClients()
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		s.dbPool = dbPool
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("workouttracker", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "workouttracker", s.redisClient)
	if err != nil {
		s.closeClients()
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}
	s.otelShutdown = otelShutdown

	store, err := s.newStore(ctx)
	if err != nil {
		s.otelShutdown()
		s.closeClients()
		return nil, fmt.Errorf("new store: %w", err)
	}

	library := exercises.Default()
	if cfg.ExercisesPath != "" {
		library, err = exercises.LoadFile(cfg.ExercisesPath)
		if err != nil {
			_ = store.Close()
			s.otelShutdown()
			s.closeClients()
			return nil, fmt.Errorf("load exercises: %w", err)
		}
	}

	s.tracker, err = tracker.New(ctx, tracker.Params{
		Library:        library,
		Store:          store,
		Scheduler:      params.Scheduler,
		Notifier:       params.Notifier,
		Player:         params.Player,
		Renderer:       params.Renderer,
		MetricsManager: s.metricsManager,
		WorkoutOptions: &workout.Options{
			AllowNavigationDuringRest: cfg.NavigationDuringRest(),
		},
	})
	if err != nil {
		_ = store.Close()
		s.otelShutdown()
		s.closeClients()
		return nil, fmt.Errorf("new tracker: %w", err)
	}

	s.setupHTTPServers()
	return s, nil
}

// newStore builds the configured backend. Remote backends get a freecache
// read-through layer; every backend is instrumented.
func (s *Server) newStore(ctx context.Context) (storage.Store, error) {
	var store storage.Store
	switch s.config.StoreBackend {
	case config.StoreMemory:
		store = storage.NewMemoryStore()
	case config.StoreFile:
		fileStore, err := storage.NewFileStore(s.config.StorePath)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case config.StoreRedis:
		store = storage.NewCachedStore(
			storage.NewRedisStore(s.redisClient, s.config.RedisKeyPrefix),
			s.config.StoreCacheMB,
		)
	case config.StorePostgres:
		pgStore := storage.NewPostgresStore(s.dbPool)
		if err := pgStore.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate kv table: %w", err)
		}
		store = storage.NewCachedStore(pgStore, s.config.StoreCacheMB)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", s.config.StoreBackend)
	}
	log.Infof("using [%s] store", s.config.StoreBackend)
	return storage.NewInstrumentedStore(store, s.metricsManager), nil
}

func (s *Server) Tracker() *tracker.Tracker {
	return s.tracker
}

// routerSetup builds the API router. CORS wraps the whole router so preflight
// and forbidden-origin requests are answered before routing.
func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("workouttracker-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	actions := tracker.NewHandler(s.tracker).SetupRoutes(api)
	if s.config.RateLimitRequests && s.redisClient != nil {
		actions.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"tracker-actions",
			s.config.RateLimitPerMin,
			s.metricsManager,
		))
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes))

	return middleware.Cors(s.config.AllowedOrigins)(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONResponseOK(w, map[string]string{
		"status":  "ok",
		"session": s.tracker.ID(),
	})
}

func (s *Server) setupHTTPServers() {
	ipAndPort := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	if s.config.PrometheusMetricsPort == "" {
		return
	}
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	s.metricsHttpServer = &http.Server{
		Addr:              net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve blocks until both listeners stop. A listener closed by
// GracefulShutdown is not an error.
func (s *Server) Serve(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof(" > server listening on: [%s]", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("main service, listen and serve: %w", err)
		}
		return nil
	})

	if s.metricsHttpServer != nil {
		g.Go(func() error {
			log.Debugf(" > metrics listening on: [%s]", s.metricsHttpServer.Addr)
			if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics service, listen and serve: %w", err)
			}
			return nil
		})
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
	return g.Wait()
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var errs error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	log.Warnln("server shut down")

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown metrics http server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	// closes the store too, the postgres store owns the db pool
	if err := s.tracker.Close(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("close tracker: %w", err))
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	errs = multierr.Append(errs, s.closeClients())

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return errs
}

func (s *Server) closeClients() error {
	var errs error
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = multierr.Append(errs, fmt.Errorf("close redis client: %w", err))
		}
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close()
	}
	return errs
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
