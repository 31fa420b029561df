// Package server exposes the tool surface over HTTP. One route per concern:
// POST /tools/{name} executes a tool, GET /healthz answers liveness probes.
// Tool execution is serialized with a mutex because the host session is
// single-threaded; concurrent tool calls would interleave their host calls.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/adamjmurray/producer-pal-sub001/operr"
	"github.com/adamjmurray/producer-pal-sub001/tools"
)

// Server routes HTTP requests to the tool engine.
type Server struct {
	engine  *tools.Engine
	mu      sync.Mutex
	handler http.Handler
}

// New builds the router around an engine.
func New(engine *tools.Engine) *Server {
	s := &Server{engine: engine}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/tools/{name}", s.handleTool).Methods(http.MethodPost)
	s.handler = cors.Default().Handler(router)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)

	name := mux.Vars(r)["name"]
	transaction := sentry.StartTransaction(r.Context(), "tool."+name)
	transaction.SetTag("request_id", requestID)
	defer transaction.Finish()
	ctx := transaction.Context()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	decode := func(v any) bool {
		if derr := decoder.Decode(v); derr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + derr.Error()})
			return false
		}
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result any
	var err error
	switch name {
	case "duplicate":
		var req tools.DuplicateRequest
		if !decode(&req) {
			return
		}
		result, err = s.engine.Duplicate(ctx, req)
	case "delete":
		var req tools.DeleteRequest
		if !decode(&req) {
			return
		}
		result, err = s.engine.Delete(ctx, req)
	case "transformClips":
		var req tools.TransformRequest
		if !decode(&req) {
			return
		}
		result, err = s.engine.Transform(ctx, req)
	case "readClip":
		var req tools.ReadClipRequest
		if !decode(&req) {
			return
		}
		result, err = s.engine.ReadClip(ctx, req)
	case "exportClip":
		var req tools.ExportClipRequest
		if !decode(&req) {
			return
		}
		result, err = s.engine.ExportClip(ctx, req)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown tool " + name})
		return
	}

	if err != nil {
		status := statusFor(err)
		transaction.Status = sentry.HTTPtoSpanStatus(status)
		log.Printf("⚠️  %s [%s]: %v", name, requestID, err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// statusFor maps the operation error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal failure.
func statusFor(err error) int {
	var (
		validation  *operr.ValidationError
		format      *operr.FormatError
		outOfRange  *operr.RangeError
		mismatch    *operr.TypeMismatchError
		unsupported *operr.UnsupportedOperationError
		notFound    *operr.NotFoundError
		limit       *operr.LimitExceededError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &format),
		errors.As(err, &outOfRange), errors.As(err, &mismatch),
		errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &limit):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("⚠️  encoding response: %v", err)
	}
}
