// Package httputil writes the JSON bodies the proxy uses for failures it
// generates itself.
package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorHeader marks a response produced by the proxy rather than by the
// upstream server or a mock file.
const ErrorHeader = "X-Filemock-Error"

// ErrorBody is the JSON shape of a proxy-generated error.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an ErrorBody and sets ErrorHeader to errCode.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set(ErrorHeader, errCode)
	WriteJSON(w, status, ErrorBody{Error: errCode, Message: message})
}

// WriteBadRequest writes a 400 error.
func WriteBadRequest(w http.ResponseWriter, errCode, message string) {
	WriteError(w, http.StatusBadRequest, errCode, message)
}

// WriteInternalError writes a 500 error.
func WriteInternalError(w http.ResponseWriter, errCode, message string) {
	WriteError(w, http.StatusInternalServerError, errCode, message)
}

// WriteBadGateway writes a 502 error.
func WriteBadGateway(w http.ResponseWriter, errCode, message string) {
	WriteError(w, http.StatusBadGateway, errCode, message)
}
