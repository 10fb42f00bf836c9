package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type jsonResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON writes data as is, without the success envelope.
func RespondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// RespondSuccess wraps data in the success envelope.
func RespondSuccess(w http.ResponseWriter, message string, data interface{}) {
	response := &jsonResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	}
	RespondJSON(w, http.StatusOK, response)
}

// RespondError sends an error JSON response. err is logged, never sent.
func RespondError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("Error: %s: %v", message, err)
	}
	response := &jsonResponse{
		Success: false,
		Code:    code,
		Message: message,
	}
	RespondJSON(w, code, response)
}
