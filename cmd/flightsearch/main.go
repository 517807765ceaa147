package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flightsearch/cfg"
	"flightsearch/internal/airport"
	"flightsearch/internal/catalog"
	"flightsearch/internal/flight"
	"flightsearch/internal/middleware"
	"flightsearch/pkg/amadeus"
	"flightsearch/pkg/cache"
	"flightsearch/pkg/idgen"
	"flightsearch/pkg/logger"

	_ "flightsearch/cmd/flightsearch/docs" // swagger docs

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// @title           Flight Search API
// @version         1.0
// @description     Search flights through the aggregator and refine the results without new upstream calls.
// @BasePath        /
// @schemes         http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	if config.Observability.OTLPEndpoint != "" {
		shutdownOtel, err := initOtel(ctx, &config.Observability, zlogger)
		if err != nil {
			log.Fatalf("failed to initialize OpenTelemetry: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Printf("failed to shutdown OpenTelemetry: %v", err)
			}
		}()
	} else {
		zlogger.Warn("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing and otel metrics disabled")
	}

	// ============
	// Cache
	// ============
	ttl := time.Duration(config.CacheTTLMinutes) * time.Minute
	store, err := newCache(ctx, config, ttl)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// IDs
	// ============
	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// External Service
	// ============
	fetcher := amadeus.NewHTTPFetcher(amadeus.FetcherConfig{
		BaseURL:           config.Amadeus.BaseURL,
		ClientID:          config.Amadeus.ClientID,
		ClientSecret:      config.Amadeus.ClientSecret,
		RequestsPerSecond: config.Amadeus.RequestsPerSecond,
		Burst:             int(config.Amadeus.RequestsPerSecond) + 1,
		Timeout:           15 * time.Second,
	})
	amadeusClient := amadeus.NewClient(fetcher, config.Amadeus.BaseURL, zlogger)

	// ============
	// Internal Service
	// ============
	flightSvc := flight.NewService(amadeusClient, store, ids, flight.SearchConfig{
		CurrencyCode: config.Search.CurrencyCode,
		MaxResults:   config.Search.MaxResults,
		TTL:          ttl,
	}, zlogger)
	flightHandler := flight.NewFlightHandler(flightSvc)

	airportSvc := airport.NewService(amadeusClient, store, ttl, zlogger)
	airportHandler := airport.NewHandler(airportSvc)

	labels, err := catalog.Load()
	if err != nil {
		log.Fatal(err)
	}
	catalogHandler := catalog.NewHandler(labels)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(middleware.TraceLogger(zlogger))
	r.Use(middleware.Metrics(httpMetrics))

	flightHandler.RegisterRoutes(r)
	airportHandler.RegisterRoutes(r)
	catalogHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	initSwagger(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlogger.Info("server listening", logger.Field{Key: "addr", Value: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	zlogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("graceful shutdown failed", logger.Err(err))
	}
}

func newCache(ctx context.Context, config *cfg.Config, ttl time.Duration) (cache.Cache, error) {
	if config.CacheDriver == cfg.CacheDriverMemory {
		return cache.NewMemoryCache(ttl, 2*ttl), nil
	}
	return cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     config.RedisConfig.Host + ":" + config.RedisConfig.Port,
		Password: config.RedisConfig.Password,
		DB:       config.RedisConfig.DB,
	})
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}

// initOtel initializes OpenTelemetry tracer and meter with OTLP exporter
func initOtel(ctx context.Context, config *cfg.ObservabilityConfig, log logger.Client) (func(context.Context) error, error) {
	conn, err := grpc.NewClient(
		config.OTLPEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.DeploymentEnvironment(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	log.Info("OpenTelemetry initialized - sending to OTLP collector",
		logger.Field{Key: "otlp_endpoint", Value: config.OTLPEndpoint},
	)

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			wrapErr("tracer shutdown failed", tp.Shutdown(ctx)),
			wrapErr("meter shutdown failed", mp.Shutdown(ctx)),
			wrapErr("collector connection close failed", conn.Close()),
		)
	}

	return shutdown, nil
}

func wrapErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
