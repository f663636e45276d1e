package api

import (
	"errors"
	"net/http"

	"app/pkg/tts"
)

func (api *API) voicesHandler(w http.ResponseWriter, r *http.Request) {
	voices, err := api.provider.ListVoices(r.Context())
	if err != nil {
		api.logger.Error("list voices failed", "provider", api.provider.Name(), "err", err)

		if errors.Is(err, tts.ErrMalformedResponse) {
			writeError(w, http.StatusBadGateway, reasonUpstreamMalformed)
		} else {
			writeError(w, http.StatusBadGateway, reasonUpstreamDown)
		}

		return
	}

	writeJSON(w, http.StatusOK, voices)
}
