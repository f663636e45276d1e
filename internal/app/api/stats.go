package api

import (
	"net/http"
)

type statsResp struct {
	Conversions struct {
		Wav         uint64 `json:"wav"`
		Mp3         uint64 `json:"mp3"`
		Pcm         uint64 `json:"pcm"`
		Passthrough uint64 `json:"passthrough"`
		Total       uint64 `json:"total"`
	} `json:"conversions"`
}

func (api *API) statsHandler(w http.ResponseWriter, _ *http.Request) {
	resp := &statsResp{}
	resp.Conversions.Wav = api.stats.Wav.Load()
	resp.Conversions.Mp3 = api.stats.Mp3.Load()
	resp.Conversions.Pcm = api.stats.Pcm.Load()
	resp.Conversions.Passthrough = api.stats.Passthrough.Load()
	resp.Conversions.Total = resp.Conversions.Wav + resp.Conversions.Mp3 + resp.Conversions.Pcm + resp.Conversions.Passthrough

	writeJSON(w, http.StatusOK, resp)
}
