package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bikeshare/internal/analysis"
	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
	"bikeshare/internal/export"
	"bikeshare/internal/log"
	"bikeshare/internal/middleware/trace"
	"bikeshare/internal/report"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "bikeshare-report.xlsx"

	failureHeading = "Laporan tidak dapat dibuat"
)

var errTemplatesNotLoaded = errors.New("templates not loaded")

// errorPage is the data for error.html.
type errorPage struct {
	Title     string
	Heading   string
	Kind      string
	Message   string
	RequestID string
}

// handleReport loads the dataset, runs the analysis and writes the whole
// page in one go. Nothing is written until the page rendered completely.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	if s.templates == nil {
		s.fail(w, r, OutputHTML, errTemplatesNotLoaded, start)
		return
	}

	tbl, err := s.source.Load(ctx)
	if err != nil {
		s.fail(w, r, OutputHTML, err, start)
		return
	}

	page, err := report.Build(ctx, tbl, report.Options{HeadRows: s.headRows})
	if err != nil {
		s.fail(w, r, OutputHTML, err, start)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "report.html", page); err != nil {
		s.fail(w, r, OutputHTML, fmt.Errorf("execute report template: %w", err), start)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)

	s.succeeded(r.Context(), OutputHTML, tbl, time.Since(start))
}

// handleExport serves the aggregate tables as an xlsx workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	tbl, err := s.source.Load(ctx)
	if err != nil {
		s.fail(w, r, OutputXLSX, err, start)
		return
	}

	res, err := analysis.Analyze(tbl.Records)
	if err != nil {
		s.fail(w, r, OutputXLSX, err, start)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, res); err != nil {
		s.fail(w, r, OutputXLSX, err, start)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)

	s.succeeded(r.Context(), OutputXLSX, tbl, time.Since(start))
}

func (s *Server) succeeded(ctx context.Context, output string, tbl *dataset.Table, elapsed time.Duration) {
	s.metrics.ObserveRender(output, tbl.Len(), elapsed)
	log.NewStructuredLogger(log.FromContext(ctx)).
		LogReportRendered(ctx, output, s.backend, tbl.Len(), tbl.Inconsistent, elapsed.Milliseconds())
}

// fail records err and answers 500. HTML requests get the failure page.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, output string, err error, start time.Time) {
	ctx := r.Context()
	kind := core.Kind(err)

	s.metrics.ObserveFailure(output, kind, time.Since(start))
	log.NewStructuredLogger(log.FromContext(ctx)).LogReportFailed(ctx, output, err, kind)

	if output != OutputHTML || s.templates == nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	data := errorPage{
		Title:     report.Title,
		Heading:   failureHeading,
		Kind:      kind,
		Message:   err.Error(),
		RequestID: trace.GetRequestID(ctx),
	}
	if terr := s.templates.ExecuteTemplate(&buf, "error.html", data); terr != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Error template execution failed",
			log.FieldError, terr,
			log.FieldComponent, log.ComponentTemplate)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady checks the templates and, when the source supports it,
// that the dataset is reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if p, ok := s.source.(dataset.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			checks["dataset"] = fmt.Sprintf("failed: %v", err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["dataset"] = "ok"
		}
	} else {
		checks["dataset"] = "unchecked"
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.limiter.ActiveClients(),
		"status":         "ok",
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"backend":   s.backend,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
