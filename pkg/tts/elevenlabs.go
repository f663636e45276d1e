package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"app/pkg/tools"
)

type ElevenLabsConfig struct {
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
	VoiceID string `yaml:"voice_id"`
	ModelID string `yaml:"model_id"`
}

type ElevenLabsClient struct {
	cfg        *ElevenLabsConfig
	httpClient HTTPClient
}

func NewElevenLabsClient(httpClient HTTPClient, cfg *ElevenLabsConfig) *ElevenLabsClient {
	return &ElevenLabsClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *ElevenLabsClient) Name() string {
	return "elevenlabs"
}

type elevenLabsReq struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize calls the text-to-speech endpoint, which answers with mp3 bytes.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, ttsReq *Request) (*Audio, error) {
	start := time.Now()

	req := &elevenLabsReq{
		Text:    ttsReq.Text,
		ModelID: c.cfg.ModelID,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.cfg.URL, c.cfg.VoiceID)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Add("Content-Type", "application/json")
	request.Header.Add("Accept", "audio/mpeg")
	request.Header.Add("xi-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to post to elevenlabs: %v", ErrUnavailable, err)
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

	if len(respData) == 0 {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: elevenlabs returned empty audio", ErrMalformedResponse)
	}

	metrics.QueryTime.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

	return &Audio{Data: respData}, nil
}

type elevenLabsVoicesResp struct {
	Voices []struct {
		VoiceID string `json:"voice_id"`
		Name    string `json:"name"`
		Labels  struct {
			Gender string `json:"gender"`
		} `json:"labels"`
	} `json:"voices"`
}

func (c *ElevenLabsClient) ListVoices(ctx context.Context) ([]Voice, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"/v1/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Add("xi-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to list voices: %v", ErrUnavailable, err)
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

	voicesResp := &elevenLabsVoicesResp{}
	if err := json.Unmarshal(respData, voicesResp); err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: failed to unmarshal voices resp: %v", ErrMalformedResponse, err)
	}

	voices := make([]Voice, 0, len(voicesResp.Voices))
	for _, v := range voicesResp.Voices {
		voices = append(voices, Voice{
			ID:     v.VoiceID,
			Name:   v.Name,
			Gender: v.Labels.Gender,
		})
	}

	return voices, nil
}
