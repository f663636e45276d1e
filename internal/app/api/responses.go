package api

import (
	"encoding/json"
	"net/http"
)

// Machine-readable failure reasons returned in json error bodies.
const (
	reasonUnauthorized      = "unauthorized"
	reasonBadRequest        = "bad_request"
	reasonUpstreamDown      = "upstream_unavailable"
	reasonUpstreamMalformed = "upstream_malformed_response"
	reasonDecodeFailure     = "decode_failure"
)

type errResp struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(&errResp{Error: reason})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(body)
}
