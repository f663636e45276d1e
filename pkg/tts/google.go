package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/pkg/tools"
)

type GoogleConfig struct {
	URL       string `yaml:"url"`
	APIKey    string `yaml:"api_key"`
	VoiceName string `yaml:"voice_name"`
	Language  string `yaml:"language"`
}

// GoogleClient talks to the cloud text-to-speech REST api. LINEAR16 at the
// requested rate means the answer is already a wav at the right sample rate,
// the normalizer only strips the header.
type GoogleClient struct {
	cfg        *GoogleConfig
	httpClient HTTPClient
}

func NewGoogleClient(httpClient HTTPClient, cfg *GoogleConfig) *GoogleClient {
	return &GoogleClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *GoogleClient) Name() string {
	return "google"
}

type googleReq struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding   string `json:"audioEncoding"`
		SampleRateHertz int    `json:"sampleRateHertz"`
	} `json:"audioConfig"`
}

type googleResp struct {
	AudioContent string `json:"audioContent"`
}

func (c *GoogleClient) Synthesize(ctx context.Context, ttsReq *Request) (*Audio, error) {
	start := time.Now()

	req := &googleReq{}
	req.Input.Text = ttsReq.Text
	req.Voice.LanguageCode = c.cfg.Language
	req.Voice.Name = c.cfg.VoiceName
	req.AudioConfig.AudioEncoding = "LINEAR16"
	req.AudioConfig.SampleRateHertz = ttsReq.SampleRate

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.cfg.URL + "/v1/text:synthesize?key=" + c.cfg.APIKey

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "network").Inc()
		return nil, fmt.Errorf("%w: failed to post to google tts: %v", ErrUnavailable, err)
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

	gResp := &googleResp{}
	if err := json.Unmarshal(respData, gResp); err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: failed to unmarshal google tts resp: %v", ErrMalformedResponse, err)
	}

	if gResp.AudioContent == "" {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: google tts resp has no audio content", ErrMalformedResponse)
	}

	audio, err := base64.StdEncoding.DecodeString(gResp.AudioContent)
	if err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: failed to decode audio content: %v", ErrMalformedResponse, err)
	}

	metrics.QueryTime.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

	return &Audio{Data: audio}, nil
}

type googleVoicesResp struct {
	Voices []struct {
		Name                   string   `json:"name"`
		LanguageCodes          []string `json:"languageCodes"`
		SsmlGender             string   `json:"ssmlGender"`
		NaturalSampleRateHertz int      `json:"naturalSampleRateHertz"`
	} `json:"voices"`
}

// ListVoices returns the voices matching the configured language.
func (c *GoogleClient) ListVoices(ctx context.Context) ([]Voice, error) {
	url := c.cfg.URL + "/v1/voices?languageCode=" + c.cfg.Language + "&key=" + c.cfg.APIKey

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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

	voicesResp := &googleVoicesResp{}
	if err := json.Unmarshal(respData, voicesResp); err != nil {
		metrics.Errors.WithLabelValues(c.Name(), "malformed").Inc()
		return nil, fmt.Errorf("%w: failed to unmarshal voices resp: %v", ErrMalformedResponse, err)
	}

	voices := make([]Voice, 0, len(voicesResp.Voices))
	for _, v := range voicesResp.Voices {
		voices = append(voices, Voice{
			ID:         v.Name,
			Name:       v.Name,
			Language:   strings.Join(v.LanguageCodes, ","),
			Gender:     v.SsmlGender,
			SampleRate: v.NaturalSampleRateHertz,
		})
	}

	return voices, nil
}
