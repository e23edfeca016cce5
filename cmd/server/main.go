package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/kaos-order/internal/adapter/handler"
	"github.com/rl1809/kaos-order/internal/adapter/storage"
	"github.com/rl1809/kaos-order/internal/config"
	"github.com/rl1809/kaos-order/internal/core/handoff"
	"github.com/rl1809/kaos-order/internal/core/service"
	"github.com/rl1809/kaos-order/internal/logging"
	"github.com/rl1809/kaos-order/internal/metrics"
	"github.com/rl1809/kaos-order/internal/port"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(reg)

	// Session store
	var (
		sessions port.SessionRepository
		rdb      *redis.Client
		wg       sync.WaitGroup
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		sessions = storage.NewRedisAdapter(rdb, cfg.SessionTTL)
	} else {
		memory := storage.NewMemoryAdapter(cfg.SessionTTL)
		sessions = memory

		wg.Add(1)
		go func() {
			defer wg.Done()
			sweepLoop(ctx, memory, logger)
		}()
		logger.Info("using in-memory session store", zap.Duration("ttl", cfg.SessionTTL))
	}

	// Service
	composer := handoff.NewComposer(time.Now, handoff.Jakarta())
	orderService := service.NewOrderService(sessions, composer,
		service.WithMetrics(serverMetrics),
		service.WithNoticeDelay(cfg.NoticeDelay),
		service.WithLogger(logger),
	)

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogger(logger)))
	handler.RegisterOrderFormServer(grpcServer, handler.NewGRPCHandler(orderService, logger))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(orderService, logger, cfg.SessionTTL)
	router := chi.NewRouter()
	router.Handle("/metrics", metrics.Handler(reg))
	router.Mount("/", handler.NewRouter(httpHandler, serverMetrics.Middleware))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	cancel()
	wg.Wait()

	if rdb != nil {
		rdb.Close()
		logger.Info("redis connection closed")
	}
}

// sweepLoop drops expired sessions from the in-memory store until ctx ends.
func sweepLoop(ctx context.Context, store *storage.MemoryAdapter, logger *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug("expired sessions swept", zap.Int("swept", n), zap.Int("live", store.Len()))
			}
		}
	}
}
