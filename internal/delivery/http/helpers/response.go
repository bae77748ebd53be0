package helpers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the body of every error response and of bare acknowledgements.
// swagger:model APIResponse
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DataResponse wraps a fetched resource.
// swagger:model DataResponse
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONData writes {"success": true, "data": data}.
func WriteJSONData(w http.ResponseWriter, statusCode int, data any) {
	WriteJSON(w, statusCode, DataResponse{Success: true, Data: data})
}

// WriteJSONError writes {"success": false, "message": message}.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, APIResponse{Success: false, Message: message})
}
