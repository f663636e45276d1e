package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/pkg/tools"
)

type DeepdubConfig struct {
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
	VoiceID string `yaml:"voice_id"`
	Locale  string `yaml:"locale"`
	Model   string `yaml:"model"`
}

type DeepdubClient struct {
	cfg        *DeepdubConfig
	httpClient HTTPClient
}

func NewDeepdubClient(httpClient HTTPClient, cfg *DeepdubConfig) *DeepdubClient {
	return &DeepdubClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *DeepdubClient) Name() string {
	return "deepdub"
}

type deepdubReq struct {
	Model      string `json:"model"`
	TargetText string `json:"targetText"`
	VoiceID    string `json:"voicePromptId"`
	Locale     string `json:"locale"`
}

type deepdubResp struct {
	AudioURL string `json:"audioUrl"`
}

// Synthesize posts the text to deepdub. The API answers either with audio
// bytes directly or with a json envelope holding a url we have to fetch in a
// second call.
func (c *DeepdubClient) Synthesize(ctx context.Context, ttsReq *Request) (*Audio, error) {
	start := time.Now()

	req := &deepdubReq{
		Model:      c.cfg.Model,
		TargetText: ttsReq.Text,
		VoiceID:    c.cfg.VoiceID,
		Locale:     c.cfg.Locale,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Add("Content-Type", "application/json")
	request.Header.Add("x-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to post to deepdub: %v", ErrUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode > 299 {
		metrics.Errors.WithLabelValues(c.Name(), strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: status code %d, err - %s", ErrUnavailable, resp.StatusCode, string(respData))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "audio/") {
		metrics.QueryTime.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

		return &Audio{Data: respData}, nil
	}

	ddResp := &deepdubResp{}
	if err := json.Unmarshal(respData, ddResp); err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: failed to unmarshal deepdub resp: %v", ErrMalformedResponse, err)
	}

	if ddResp.AudioURL == "" {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: deepdub resp has no audio url", ErrMalformedResponse)
	}

	audio, err := c.fetchAudio(ctx, ddResp.AudioURL)
	if err != nil {
		return nil, err
	}

	metrics.QueryTime.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

	return &Audio{Data: audio}, nil
}

func (c *DeepdubClient) fetchAudio(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio request: %w", err)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to fetch audio url: %v", ErrUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to read audio body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode > 299 {
		metrics.Errors.WithLabelValues(c.Name(), strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: audio fetch status code %d", ErrUnavailable, resp.StatusCode)
	}

	return respData, nil
}

// ListVoices returns the single configured voice, deepdub has no public
// listing endpoint we can relay.
func (c *DeepdubClient) ListVoices(_ context.Context) ([]Voice, error) {
	return []Voice{{
		ID:       c.cfg.VoiceID,
		Name:     c.cfg.VoiceID,
		Language: c.cfg.Locale,
	}}, nil
}
