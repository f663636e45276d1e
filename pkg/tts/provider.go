package tts

import (
	"context"
	"errors"
	"net/http"
)

var _ HTTPClient = http.DefaultClient

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Upstream failure classes. The platform calling us retries, we don't.
var (
	ErrUnavailable       = errors.New("upstream unavailable")
	ErrMalformedResponse = errors.New("upstream malformed response")
)

type Request struct {
	Text       string
	SampleRate int
}

type Audio struct {
	Data []byte

	// PCM marks data that is already raw 16-bit mono PCM at the requested
	// rate, so the normalizer can be skipped.
	PCM bool
}

type Voice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Language   string `json:"language,omitempty"`
	Gender     string `json:"gender,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
}

// Provider is a single upstream TTS vendor, selected once at startup.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, req *Request) (*Audio, error)
	ListVoices(ctx context.Context) ([]Voice, error)
}
