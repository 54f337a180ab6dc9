package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cmsdko/lingua"
	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/merge"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/preprocess"
	"github.com/cmsdko/lingua/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// ExtractRequest is the body of POST /v1/extract. An empty language is
// detected from the text.
type ExtractRequest struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Task     string `json:"task,omitempty"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
}

// APIError is the structure for JSON error responses.
type APIError struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// apiHandler holds the shared pipeline components.
type apiHandler struct {
	extractor *lingua.Extractor
	provider  nlp.Provider
	log       *logger.Logger
}

func newAPIHandler(ex *lingua.Extractor, p nlp.Provider, log *logger.Logger) *apiHandler {
	return &apiHandler{extractor: ex, provider: p, log: log}
}

func (h *apiHandler) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/extract", h.handleExtract).Methods(http.MethodPost)
	v1.HandleFunc("/preprocess", h.handlePreprocess).Methods(http.MethodPost)
	v1.HandleFunc("/merge", h.handleMerge).Methods(http.MethodPost)
	return r
}

// requestID echoes the caller's X-Request-ID or assigns a new one.
func (h *apiHandler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

func (h *apiHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "lexicon": lang.Version()})
}

func (h *apiHandler) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !decode(w, r, &req) {
		return
	}
	l := lang.Detect(req.Text)
	if req.Language != "" {
		var err error
		if l, err = lang.Parse(req.Language); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	rec, err := h.extractor.Extract(r.Context(), lingua.Transcript{
		ID:       req.ID,
		Language: l,
		Text:     req.Text,
		Task:     req.Task,
		Name:     req.Name,
	})
	if err != nil {
		h.log.Warn("extract failed", "id", req.ID, "request_id", r.Header.Get(requestIDHeader), "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *apiHandler) handlePreprocess(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := lang.Parse(req.Language)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := preprocess.OutputName(req.ID, req.Name); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := preprocess.Run(r.Context(), h.provider, req.ID, l, req.Text)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *apiHandler) handleMerge(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	s, err := merge.Decode(r.Body)
	if err != nil {
		jsonError(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	t := merge.Merge(s)
	if _, err := merge.OutputName(t, ""); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps caller mistakes to 4xx and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lingua.ErrEmptyTranscript), errors.Is(err, lang.ErrUnsupportedLanguage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, nlp.ErrProvider):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonError writes a standard JSON error message to the response.
func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, APIError{Error: message, RequestID: w.Header().Get(requestIDHeader)})
}
