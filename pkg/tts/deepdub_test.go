package tts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/pkg/tts"

	"github.com/stretchr/testify/require"
)

func TestDeepdubFetchesAudioURL(t *testing.T) {
	assert := require.New(t)

	wantAudio := []byte("fake-audio-bytes")

	mux := http.NewServeMux()

	mux.HandleFunc("/audio/generated.wav", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(wantAudio)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/api/v1/tts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("test-key", r.Header.Get("x-api-key"))

		var req map[string]any
		assert.NoError(json.NewDecoder(r.Body).Decode(&req))
		assert.Equal("hello", req["targetText"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioUrl": server.URL + "/audio/generated.wav",
		})
	})

	client := tts.NewDeepdubClient(http.DefaultClient, &tts.DeepdubConfig{
		URL:     server.URL + "/api/v1/tts",
		APIKey:  "test-key",
		VoiceID: "voice-1",
		Locale:  "he-IL",
		Model:   "dd-etts-2.5",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	aud, err := client.Synthesize(ctx, &tts.Request{Text: "hello", SampleRate: 24000})
	assert.NoError(err)

	assert.Equal(wantAudio, aud.Data)
	assert.False(aud.PCM)
}

func TestDeepdubInlineAudio(t *testing.T) {
	assert := require.New(t)

	wantAudio := []byte("inline-audio")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write(wantAudio)
	}))
	defer server.Close()

	client := tts.NewDeepdubClient(http.DefaultClient, &tts.DeepdubConfig{
		URL:    server.URL,
		APIKey: "test-key",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	aud, err := client.Synthesize(ctx, &tts.Request{Text: "hello", SampleRate: 24000})
	assert.NoError(err)

	assert.Equal(wantAudio, aud.Data)
}

func TestDeepdubMalformedJSON(t *testing.T) {
	assert := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := tts.NewDeepdubClient(http.DefaultClient, &tts.DeepdubConfig{
		URL:    server.URL,
		APIKey: "test-key",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := client.Synthesize(ctx, &tts.Request{Text: "hello", SampleRate: 24000})
	assert.ErrorIs(err, tts.ErrMalformedResponse)
}

func TestDeepdubMissingAudioURL(t *testing.T) {
	assert := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := tts.NewDeepdubClient(http.DefaultClient, &tts.DeepdubConfig{
		URL:    server.URL,
		APIKey: "test-key",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := client.Synthesize(ctx, &tts.Request{Text: "hello", SampleRate: 24000})
	assert.ErrorIs(err, tts.ErrMalformedResponse)
}

func TestDeepdubUpstreamError(t *testing.T) {
	assert := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := tts.NewDeepdubClient(http.DefaultClient, &tts.DeepdubConfig{
		URL:    server.URL,
		APIKey: "test-key",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := client.Synthesize(ctx, &tts.Request{Text: "hello", SampleRate: 24000})
	assert.ErrorIs(err, tts.ErrUnavailable)
}
