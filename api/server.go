// Package api - Thin HTTP layer over the quoting pipeline
// The API is only responsible for input ingestion, pipeline invocation,
// and output serialization. It never performs premium logic. Declined
// quotes are successful responses; HTTP errors are reserved for
// malformed input and missing resources.
package api

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"quote-engine/adapters/classification"
	"quote-engine/core/engine"
	"quote-engine/core/types"
	"quote-engine/internal/errors"
	"quote-engine/internal/logging"
	"quote-engine/internal/recorder"
)

const quotesPath = "/api/v1/quotes"

// Server serves the quote API
type Server struct {
	orchestrator *engine.Orchestrator
	catalog      *classification.Catalog
	recorder     recorder.Recorder
	version      string
}

// Option configures a server
type Option func(*Server)

// WithCatalog enables classification validation at the boundary
func WithCatalog(catalog *classification.Catalog) Option {
	return func(s *Server) { s.catalog = catalog }
}

// WithRecorder enables the quote audit trail
func WithRecorder(rec recorder.Recorder) Option {
	return func(s *Server) { s.recorder = rec }
}

// NewServer creates an API server
func NewServer(orchestrator *engine.Orchestrator, version string, opts ...Option) (*Server, error) {
	if orchestrator == nil {
		return nil, errors.Config("api server requires an orchestrator")
	}

	s := &Server{
		orchestrator: orchestrator,
		recorder:     recorder.NewNoopRecorder(),
		version:      version,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the fasthttp request handler
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.route
}

// ListenAndServe serves the API on addr until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("quote api listening", zap.String("addr", addr))
	return fasthttp.ListenAndServe(addr, s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/health" && method == fasthttp.MethodGet:
		s.handleHealth(ctx)
	case path == quotesPath && method == fasthttp.MethodPost:
		s.handleCreateQuote(ctx)
	case path == quotesPath && method == fasthttp.MethodGet:
		s.handleHistory(ctx)
	case strings.HasPrefix(path, quotesPath+"/") && method == fasthttp.MethodGet:
		s.handleGetQuote(ctx, strings.TrimPrefix(path, quotesPath+"/"))
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, errors.TypeNotFound, "no such route")
	}
}

// handleCreateQuote handles POST /api/v1/quotes
func (s *Server) handleCreateQuote(ctx *fasthttp.RequestCtx) {
	var req types.QuoteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, errors.TypeInput, "invalid request body: "+err.Error())
		return
	}

	if err := validateRequest(&req, s.catalog); err != nil {
		s.writeDomainError(ctx, err)
		return
	}

	record, err := s.orchestrator.Quote(&req)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}

	if err := s.recorder.RecordQuote(&record); err != nil {
		// The quote already exists; a broken audit trail must not fail it
		logging.Error("audit record failed", zap.String("quote_id", record.ID), zap.Error(err))
	}

	logging.Info("quote issued",
		zap.String("quote_id", record.ID),
		zap.String("status", string(record.Status)),
		zap.String("product", string(record.Request.Product)),
		zap.Duration("processing_time", record.ProcessingTime))

	s.writeJSON(ctx, record, fasthttp.StatusOK)
}

// handleGetQuote handles GET /api/v1/quotes/{id}
func (s *Server) handleGetQuote(ctx *fasthttp.RequestCtx, id string) {
	record, err := s.orchestrator.GetQuote(id)
	if err != nil {
		s.writeDomainError(ctx, err)
		return
	}
	s.writeJSON(ctx, record, fasthttp.StatusOK)
}

// handleHistory handles GET /api/v1/quotes?tax_id=...
func (s *Server) handleHistory(ctx *fasthttp.RequestCtx) {
	taxID := string(ctx.QueryArgs().Peek("tax_id"))
	if taxID == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, errors.TypeInput, "tax_id query parameter is required")
		return
	}

	quotes := s.orchestrator.QuoteHistory(taxID)
	s.writeJSON(ctx, HistoryResponse{
		TaxID:  taxID,
		Count:  len(quotes),
		Quotes: quotes,
	}, fasthttp.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}, fasthttp.StatusOK)
}

// writeDomainError maps a domain error to an HTTP response
func (s *Server) writeDomainError(ctx *fasthttp.RequestCtx, err error) {
	if e, ok := err.(*errors.Error); ok {
		switch e.Type {
		case errors.TypeInput:
			s.writeError(ctx, fasthttp.StatusBadRequest, e.Type, e.Message)
		case errors.TypeNotFound:
			s.writeError(ctx, fasthttp.StatusNotFound, e.Type, e.Message)
		default:
			s.writeError(ctx, fasthttp.StatusInternalServerError, e.Type, e.Message)
		}
		return
	}
	s.writeError(ctx, fasthttp.StatusInternalServerError, errors.TypeInternal, err.Error())
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, errType errors.Type, message string) {
	s.writeJSON(ctx, ErrorResponse{
		Status:  status,
		Type:    string(errType),
		Message: message,
	}, status)
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, payload interface{}, status int) {
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
