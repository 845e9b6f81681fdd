// Package devserver is a local stand-in for the partnership endpoint. It
// checks every proposal against the embedded OpenAPI contract and keeps the
// accepted ones in memory so the front ends can be exercised offline.
package devserver

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/goliatone/go-partnerform/pkg/partner"
)

// DefaultPath is the route the proposal form posts to.
const DefaultPath = "/api/forms/partner"

const maxBodyBytes = 64 << 10

//go:embed openapi.yaml
var contract []byte

// Received is a stored proposal.
type Received struct {
	ID         string          `json:"id"`
	RequestID  string          `json:"requestId,omitempty"`
	ReceivedAt time.Time       `json:"receivedAt"`
	Proposal   partner.Payload `json:"proposal"`
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPath mounts the proposal route somewhere other than DefaultPath. The
// contract is still looked up under DefaultPath.
func WithPath(path string) Option {
	return func(s *Server) {
		if p := strings.TrimSpace(path); p != "" {
			s.path = p
		}
	}
}

// WithForcedStatus makes every POST answer with status and an error body,
// which is handy for exercising the failure path of a client.
func WithForcedStatus(status int) Option {
	return func(s *Server) {
		s.forcedStatus = status
	}
}

// WithClock overrides time.Now for receipts.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server receives proposals over HTTP.
type Server struct {
	router       chi.Router
	schema       *openapi3.Schema
	logger       *slog.Logger
	path         string
	forcedStatus int
	now          func() time.Time

	mu       sync.RWMutex
	received []Received
}

// New loads the contract and builds the router.
func New(options ...Option) (*Server, error) {
	s := &Server{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		path:   DefaultPath,
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	schema, err := loadProposalSchema(context.Background())
	if err != nil {
		return nil, err
	}
	s.schema = schema

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post(s.path, s.handleSubmit)
	r.Get(s.path, s.handleList)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router = r
	return s, nil
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Received returns the accepted proposals in arrival order.
func (s *Server) Received() []Received {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Received(nil), s.received...)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	logger := s.logger.With(slog.String("request_id", requestID))

	if s.forcedStatus != 0 {
		logger.Warn("forced failure", slog.Int("status", s.forcedStatus))
		writeErrors(w, s.forcedStatus, map[string][]string{"form": {http.StatusText(s.forcedStatus)}})
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeErrors(w, http.StatusUnsupportedMediaType, map[string][]string{"form": {"content type must be application/json"}})
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Info("proposal rejected", slog.Int64("limit", tooLarge.Limit))
			writeErrors(w, http.StatusRequestEntityTooLarge, map[string][]string{"form": {"body exceeds the size limit"}})
			return
		}
		writeErrors(w, http.StatusBadRequest, map[string][]string{"form": {"unreadable body"}})
		return
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		writeErrors(w, http.StatusBadRequest, map[string][]string{"form": {"body is not JSON"}})
		return
	}
	if err := s.schema.VisitJSON(doc); err != nil {
		field, message := describeSchemaError(err)
		logger.Info("proposal rejected", slog.String("field", field), slog.String("error", message))
		writeErrors(w, http.StatusUnprocessableEntity, map[string][]string{field: {message}})
		return
	}

	var proposal partner.Payload
	if err := json.Unmarshal(raw, &proposal); err != nil {
		writeErrors(w, http.StatusBadRequest, map[string][]string{"form": {err.Error()}})
		return
	}

	entry := Received{
		ID:         uuid.NewString(),
		RequestID:  requestID,
		ReceivedAt: s.now().UTC(),
		Proposal:   proposal,
	}
	s.mu.Lock()
	s.received = append(s.received, entry)
	s.mu.Unlock()

	logger.Info("proposal received",
		slog.String("id", entry.ID),
		slog.String("company", proposal.CompanyName),
		slog.Any("industries", proposal.Industries),
	)
	writeJSON(w, http.StatusCreated, map[string]string{"id": entry.ID, "status": "received"})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.Received()})
}

func loadProposalSchema(ctx context.Context) (*openapi3.Schema, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(contract)
	if err != nil {
		return nil, fmt.Errorf("devserver: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("devserver: validate contract: %w", err)
	}

	item := doc.Paths.Find(DefaultPath)
	if item == nil || item.Post == nil || item.Post.RequestBody == nil || item.Post.RequestBody.Value == nil {
		return nil, errors.New("devserver: contract has no proposal operation")
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("devserver: contract has no JSON request schema")
	}
	return media.Schema.Value, nil
}

func describeSchemaError(err error) (string, string) {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		if field == "" {
			field = "form"
		}
		return field, schemaErr.Reason
	}
	return "form", err.Error()
}

func writeErrors(w http.ResponseWriter, status int, errs map[string][]string) {
	writeJSON(w, status, map[string]any{"errors": errs})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
