// Package server exposes the amortization comparison as a JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/amortization-compare/internal/config"
	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/internal/telemetry"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/finance"
	"github.com/iwvelando/amortization-compare/pkg/output"
	"github.com/iwvelando/amortization-compare/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 10 * time.Second

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	metrics       *telemetry.Metrics
	tracer        trace.Tracer
}

// NewHandler constructs the HTTP handler that serves the simulation API and
// the metrics endpoint. A nil cfg uses DefaultConfig and nil metrics get a
// fresh registry.
func NewHandler(logger *zap.Logger, cfg *Config, version string, metrics *telemetry.Metrics) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if metrics == nil {
		metrics = telemetry.NewMetrics()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: cfg.UploadSizeBytes(),
		version:       trimmedVersion,
		metrics:       metrics,
		tracer:        telemetry.Tracer(cfg.ServiceName),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", h.handleSimulate)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle(cfg.MetricsPath, metrics.Handler())
	return mux
}

type simulateResponse struct {
	RequestID    string               `json:"requestId"`
	Result       simulation.Result    `json:"result"`
	Series       []output.SeriesPoint `json:"series"`
	Compositions []output.Composition `json:"compositions"`
	Report       string               `json:"report"`
	Duration     string               `json:"duration"`
}

type errorResponse struct {
	RequestID string   `json:"requestId"`
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)
	logger := h.logger.With(zap.String("requestId", requestID))

	ctx, span := h.tracer.Start(r.Context(), "simulate",
		trace.WithAttributes(attribute.String("request.id", requestID)))
	defer span.End()

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var conf config.Configuration
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&conf); err != nil {
		h.metrics.ObserveFailure(telemetry.StatusRejected)
		span.SetStatus(codes.Error, "undecodable request")
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, logger, requestID, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), nil)
			return
		}
		h.respondError(w, logger, requestID, http.StatusBadRequest,
			fmt.Sprintf("failed to decode request: %v", err), nil)
		return
	}

	params, fees, income, err := conf.Simulation(logger)
	if err != nil {
		h.metrics.ObserveFailure(telemetry.StatusInvalid)
		span.SetStatus(codes.Error, "invalid input")
		h.respondError(w, logger, requestID, http.StatusBadRequest, "invalid simulation input",
			validation.Messages(errors.Unwrap(err)))
		return
	}

	span.SetAttributes(
		attribute.Float64("loan.principal", params.Principal),
		attribute.Int("loan.term_months", params.TermMonths),
		attribute.Int("loan.grace_months", params.GraceMonths),
	)

	start := time.Now()
	result := h.simulate(ctx, logger, params, fees, income)
	elapsed := time.Since(start)
	h.metrics.ObserveResult(result, elapsed)

	span.SetAttributes(
		attribute.String("recommendation.winner", string(result.Recommendation.Winner)),
		attribute.Bool("recommendation.tied", result.Recommendation.Tied),
	)

	var report bytes.Buffer
	if err := output.Report(&report, result); err != nil {
		span.SetStatus(codes.Error, "report rendering failed")
		h.respondError(w, logger, requestID, http.StatusInternalServerError,
			fmt.Sprintf("failed to render report: %v", err), nil)
		return
	}

	logger.Info("simulation completed",
		zap.String("op", "server.handleSimulate"),
		zap.String("winner", string(result.Recommendation.Winner)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, logger, http.StatusOK, simulateResponse{
		RequestID:    requestID,
		Result:       result,
		Series:       output.Series(result.SAC.Schedule, result.PRICE.Schedule),
		Compositions: output.Compositions(result),
		Report:       report.String(),
		Duration:     elapsed.String(),
	})
}

func (h *handler) simulate(ctx context.Context, logger *zap.Logger, params amortization.Parameters,
	fees finance.Fees, income float64) simulation.Result {
	_, span := h.tracer.Start(ctx, "simulation.Simulate")
	defer span.End()
	return simulation.Simulate(logger, params, fees, income)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, logger *zap.Logger, requestID string, status int, msg string, details []string) {
	logger.Error("simulation request failed",
		zap.String("op", "server.handleSimulate"),
		zap.Int("status", status),
		zap.String("error", msg),
		zap.Strings("details", details),
	)

	h.writeJSON(w, logger, status, errorResponse{RequestID: requestID, Error: msg, Details: details})
}

func (h *handler) writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// Run serves the API on cfg.Address until ctx is cancelled, then shuts the
// listener down gracefully.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	shutdownTracing, err := telemetry.InitTracing(ctx, logger, cfg.ServiceName, version, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", zap.String("op", "server.Run"), zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           NewHandler(logger, cfg, version, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
			zap.String("metricsPath", cfg.MetricsPath),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
