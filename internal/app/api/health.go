package api

import (
	"net/http"
)

type healthResp struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Provider string `json:"tts_provider"`
	DemoMode bool   `json:"demo_mode"`
}

func (api *API) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &healthResp{
		Status:   "healthy",
		Service:  "vapi-tts-relay",
		Provider: api.provider.Name(),
		DemoMode: api.demoMode,
	})
}
