package utils

import (
	"encoding/json"
	"net/http"
)

type Meta struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type Pagination struct {
	Current    int   `json:"current"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Response struct {
	Meta       Meta        `json:"meta"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ResponseJSON writes the envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, message string, data any, pagination *Pagination) {
	response := Response{
		Meta: Meta{
			Status:  code,
			Message: message,
		},
		Data:       data,
		Pagination: pagination,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, message, data, nil)
}

// returns 200 OK with pagination block
func ResponsePaginated(w http.ResponseWriter, message string, data any, pagination Pagination) {
	ResponseJSON(w, http.StatusOK, message, data, &pagination)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, message, data, nil)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusBadRequest, message, data, nil)
}

// returns 403 Forbidden, used for missing credentials too
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, message, map[string]string{"error": "forbidden"}, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, message, map[string]string{"error": "not_found"}, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, message, map[string]string{"error": "internal"}, nil)
}
