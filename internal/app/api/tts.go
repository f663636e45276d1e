package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"app/pkg/audio"
	"app/pkg/tts"

	"github.com/google/uuid"
)

const defaultSampleRate = 24000

var allowedSampleRates = map[int]bool{
	8000:  true,
	16000: true,
	22050: true,
	24000: true,
	44100: true,
}

// vapiEnvelope is the platform's request shape:
// {"message": {"type": "voice-request", "text": "...", "sampleRate": 24000}}.
// The flat {"text": "..."} shape is accepted too.
type vapiEnvelope struct {
	Message *vapiMessage `json:"message"`
	Text    string       `json:"text"`
}

type vapiMessage struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	SampleRate int    `json:"sampleRate"`
}

func (api *API) ttsHandler(w http.ResponseWriter, r *http.Request) {
	generationID := uuid.NewString()
	logger := api.logger.With("generation_id", generationID)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, reasonBadRequest)

		return
	}

	envelope := &vapiEnvelope{}
	if err := json.Unmarshal(data, envelope); err != nil {
		writeError(w, http.StatusBadRequest, reasonBadRequest)

		return
	}

	text := envelope.Text
	sampleRate := defaultSampleRate

	if envelope.Message != nil {
		text = envelope.Message.Text

		if envelope.Message.SampleRate != 0 {
			sampleRate = envelope.Message.SampleRate
		}
	}

	if text == "" {
		writeError(w, http.StatusBadRequest, reasonBadRequest)

		return
	}

	if !allowedSampleRates[sampleRate] {
		writeError(w, http.StatusBadRequest, reasonBadRequest)

		return
	}

	aud, err := api.provider.Synthesize(r.Context(), &tts.Request{
		Text:       text,
		SampleRate: sampleRate,
	})
	if err != nil {
		logger.Error("synthesize failed", "provider", api.provider.Name(), "err", err)

		if errors.Is(err, tts.ErrMalformedResponse) {
			writeError(w, http.StatusBadGateway, reasonUpstreamMalformed)
		} else {
			writeError(w, http.StatusBadGateway, reasonUpstreamDown)
		}

		return
	}

	pcm := aud.Data

	if aud.PCM {
		api.stats.Pcm.Add(1)
	} else {
		res, err := audio.Normalize(aud.Data, sampleRate)
		if err != nil {
			logger.Error("normalize failed", "err", err)
			writeError(w, http.StatusInternalServerError, reasonDecodeFailure)

			return
		}

		if res.Path == audio.PathPassthrough {
			// degraded mode: no decoder matched, return the bytes as-is
			logger.Warn("unknown audio container, passing bytes through unchanged")
			api.stats.Passthrough.Add(1)
		} else if res.Path == audio.PathMp3 {
			api.stats.Mp3.Add(1)
		} else {
			api.stats.Wav.Add(1)
		}

		pcm = res.PCM
	}

	logger.Info("tts served", "provider", api.provider.Name(), "sample_rate", sampleRate, "bytes", len(pcm))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(pcm)))
	w.Header().Set("X-Generation-ID", generationID)

	_, _ = w.Write(pcm)
}
