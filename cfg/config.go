package cfg

import (
	"fmt"
	"os"
	"strconv"

	"app/internal/app/api"
	"app/pkg/tts"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Api api.Config `yaml:"api"`

	// Provider is one of deepdub, elevenlabs, google. DemoMode wins over it.
	Provider string `yaml:"provider"`
	DemoMode bool   `yaml:"demo_mode"`

	Deepdub    tts.DeepdubConfig    `yaml:"deepdub"`
	ElevenLabs tts.ElevenLabsConfig `yaml:"elevenlabs"`
	Google     tts.GoogleConfig     `yaml:"google"`
}

// Load reads the yaml config and applies env var overrides on top, so the
// same image can be configured per deployment without editing the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyEnv() {
	setString(&cfg.Api.Secret, "VAPI_SECRET")
	setString(&cfg.Provider, "TTS_PROVIDER")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Api.Port = port
		}
	}

	if v := os.Getenv("DEMO_MODE"); v != "" {
		cfg.DemoMode = v == "true" || v == "1"
	}

	setString(&cfg.Deepdub.APIKey, "DEEPDUB_API_KEY")
	setString(&cfg.Deepdub.VoiceID, "DEEPDUB_VOICE_ID")

	setString(&cfg.ElevenLabs.APIKey, "ELEVENLABS_API_KEY")
	setString(&cfg.ElevenLabs.VoiceID, "ELEVENLABS_VOICE_ID")
	setString(&cfg.ElevenLabs.ModelID, "ELEVENLABS_MODEL_ID")

	setString(&cfg.Google.APIKey, "GOOGLE_TTS_API_KEY")
	setString(&cfg.Google.VoiceName, "VOICE_NAME")
	setString(&cfg.Google.Language, "VOICE_LANGUAGE")
}

func (cfg *Config) applyDefaults() {
	if cfg.Api.Port == 0 {
		cfg.Api.Port = 5000
	}

	if cfg.Provider == "" {
		cfg.Provider = "google"
	}

	if cfg.Deepdub.URL == "" {
		cfg.Deepdub.URL = "https://restapi.deepdub.ai/api/v1/tts"
	}
	if cfg.Deepdub.Model == "" {
		cfg.Deepdub.Model = "dd-etts-2.5"
	}

	if cfg.ElevenLabs.URL == "" {
		cfg.ElevenLabs.URL = "https://api.elevenlabs.io"
	}
	if cfg.ElevenLabs.ModelID == "" {
		cfg.ElevenLabs.ModelID = "eleven_multilingual_v2"
	}

	if cfg.Google.URL == "" {
		cfg.Google.URL = "https://texttospeech.googleapis.com"
	}
	if cfg.Google.VoiceName == "" {
		cfg.Google.VoiceName = "he-IL-Wavenet-D"
	}
	if cfg.Google.Language == "" {
		cfg.Google.Language = "he-IL"
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
