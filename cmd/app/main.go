package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"app/cfg"
	"app/internal/app/api"
	"app/internal/app/metrics"
	"app/pkg/tts"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "cfg-path", "cfg/cfg.yaml", "path to config file")
	flag.Parse()

	cfg, err := cfg.Load(cfgPath)
	if err != nil {
		log.Fatalf("can't load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	metrics.RegisterMetrics(reg)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	provider, err := selectProvider(cfg, httpClient)
	if err != nil {
		log.Fatal("failed to select tts provider: ", err)
	}

	logger.Info("provider selected", "provider", provider.Name(), "demo_mode", cfg.DemoMode)

	apiServer := api.NewAPI(&cfg.Api, logger.WithGroup("api"), provider, cfg.DemoMode)

	router := apiServer.NewRouter()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Api.Port),
		Handler: router,
	}

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		logger.Info("Starting server", "port", cfg.Api.Port)

		if err := srv.ListenAndServe(); err != nil {
			logger.Error("ListenAndServe finished", "err", err)
		}
	}()

	select {
	case <-ctx.Done():
	case <-stop:
		logger.Info("Interrupt triggerred")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
}

func selectProvider(cfg *cfg.Config, httpClient tts.HTTPClient) (api.Provider, error) {
	if cfg.DemoMode {
		return tts.NewDemoProvider(), nil
	}

	switch cfg.Provider {
	case "deepdub":
		return tts.NewDeepdubClient(httpClient, &cfg.Deepdub), nil
	case "elevenlabs":
		return tts.NewElevenLabsClient(httpClient, &cfg.ElevenLabs), nil
	case "google":
		return tts.NewGoogleClient(httpClient, &cfg.Google), nil
	default:
		return nil, fmt.Errorf("unknown tts provider: %s", cfg.Provider)
	}
}
