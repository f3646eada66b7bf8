package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type JSONResponse struct {
	Error   bool   `json:"error"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// JSON writes data wrapped in the response envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, &JSONResponse{Data: data})
}

// JSONError writes an error envelope carrying msg.
func JSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &JSONResponse{Error: true, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, resp *JSONResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}
