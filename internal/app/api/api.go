package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"app/pkg/tts"
)

type Config struct {
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
	Secret  string        `yaml:"secret"`
}

var _ Provider = (*tts.DemoProvider)(nil)

// Provider mirrors tts.Provider so handler tests can plug in a spy.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, req *tts.Request) (*tts.Audio, error)
	ListVoices(ctx context.Context) ([]tts.Voice, error)
}

type API struct {
	logger *slog.Logger

	provider Provider

	demoMode bool

	cfg *Config

	stats convStats
}

// convStats counts which normalizer path served each conversion, for /stats.
type convStats struct {
	Wav         atomic.Uint64
	Mp3         atomic.Uint64
	Pcm         atomic.Uint64
	Passthrough atomic.Uint64
}

func NewAPI(cfg *Config, logger *slog.Logger, provider Provider, demoMode bool) *API {
	return &API{
		cfg: cfg,

		logger: logger,

		provider: provider,

		demoMode: demoMode,
	}
}
