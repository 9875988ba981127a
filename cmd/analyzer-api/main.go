package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/forensiclabs/utxoscope-backend/internal/analysis"
	"github.com/forensiclabs/utxoscope-backend/internal/metrics"
	"github.com/forensiclabs/utxoscope-backend/internal/provider/esplora"
	"github.com/forensiclabs/utxoscope-backend/internal/transport"
)

var config struct {
	Addr       string        `long:"addr" env:"ANALYZER_API_ADDR" description:"HTTP listen address" default:":8080"`
	EsploraURL string        `long:"esplora-url" env:"ANALYZER_API_ESPLORA_URL" description:"Esplora API base URL" default:"https://blockstream.info/api"`
	CallDelay  time.Duration `long:"call-delay" env:"ANALYZER_API_CALL_DELAY" description:"pause between successive provider calls" default:"250ms"`
	MaxRPS     int           `long:"max-rps" env:"ANALYZER_API_MAX_RPS" description:"request rate cap against the Esplora instance" default:"4"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	client, err := esplora.NewClient(esplora.Config{
		BaseURL: config.EsploraURL,
		MaxRPS:  config.MaxRPS,
	}, metrics.NewEsploraClient())
	if err != nil {
		logger.Fatal("Init esplora client", zap.Error(err))
	}

	analysisMetrics := metrics.NewAnalysis()
	batch, err := analysis.NewBatchAnalyzer(client, analysisMetrics, config.CallDelay, logger)
	if err != nil {
		logger.Fatal("Init batch analyzer", zap.Error(err))
	}
	peel, err := analysis.NewPeelAnalyzer(client, analysisMetrics, config.CallDelay, logger)
	if err != nil {
		logger.Fatal("Init peel analyzer", zap.Error(err))
	}
	cluster, err := analysis.NewClusterDriver(client, analysisMetrics, config.CallDelay, logger)
	if err != nil {
		logger.Fatal("Init cluster driver", zap.Error(err))
	}

	handler, err := transport.NewAnalyzerHandler(batch, peel, cluster, logger)
	if err != nil {
		logger.Fatal("Init analyzer handler", zap.Error(err))
	}

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(transport.RequestLogger(logger, mux)),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Analysis endpoints hold the response open while paced provider
		// calls run, so the write timeout must cover a whole run.
		WriteTimeout:   5 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
