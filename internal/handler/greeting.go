package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/projectboard/projectboard-go/internal/model"
)

// GreetingHandler implements the demo greeting resource. It persists nothing;
// the routes exist to exercise payload and parameter validation end to end.
type GreetingHandler struct{}

// NewGreetingHandler creates a new GreetingHandler.
func NewGreetingHandler() *GreetingHandler {
	return &GreetingHandler{}
}

// HandleGet handles GET /api/hello requests.
func (h *GreetingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "hello, world"})
}

// HandlePost handles POST /api/hello requests, echoing the validated payload.
func (h *GreetingHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req model.GreetingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// HandlePut handles PUT /api/hello/{helloId} requests.
func (h *GreetingHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := helloIDParam(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Update hello with id %d", id)})
}

// HandleDelete handles DELETE /api/hello/{helloId} requests.
func (h *GreetingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := helloIDParam(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Delete hello with id %d", id)})
}

func helloIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "helloId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid hello id"))
		return 0, false
	}
	return id, true
}
