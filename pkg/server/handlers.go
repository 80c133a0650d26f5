package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/graphlayers/pkg/buildinfo"
	"github.com/matzehuels/graphlayers/pkg/cache"
	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/layers"
	"github.com/matzehuels/graphlayers/pkg/report"
)

// LayersResponse is the JSON body of a successful POST /v1/layers.
type LayersResponse struct {
	RequestID   string         `json:"request_id"`
	Start       int            `json:"start"`
	VertexCount int            `json:"vertex_count"`
	EdgeCount   int            `json:"edge_count"`
	LayerCount  int            `json:"layer_count"`
	Layers      []layers.Layer `json:"layers"`
	CacheHit    bool           `json:"cache_hit"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

var contentTypes = map[string]string{
	report.FormatText: "text/plain; charset=utf-8",
	report.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	report.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	start, err := errors.ParseVertexID(q.Get("start"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = report.FormatJSON
	}
	if !report.ValidFormat(format) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidArgument, "invalid format %q", format))
		return
	}
	labels, err := report.ForLocale(q.Get("locale"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid locale"))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:     ErrorBody{Code: errors.ErrCodeInvalidArgument, Message: "graph exceeds the upload limit"},
				RequestID: RequestID(ctx),
			})
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInputAccess, err, "read request body"))
		return
	}

	g, err := s.runner.LoadBytes(ctx, "request", data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, hit, err := s.runner.Layers(ctx, cache.Hash(data), g, start)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == report.FormatJSON {
		writeJSON(w, http.StatusOK, LayersResponse{
			RequestID:   RequestID(ctx),
			Start:       m.Start(),
			VertexCount: g.VertexCount(),
			EdgeCount:   g.EdgeCount(),
			LayerCount:  m.Len(),
			Layers:      m.Entries(),
			CacheHit:    hit,
		})
		return
	}

	var buf bytes.Buffer
	opts := report.Options{Format: format, Labels: labels, Graph: g}
	if err := report.Render(ctx, &buf, m, opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidArgument, errors.ErrCodeInvalidFormat, errors.ErrCodeInputAccess:
		return http.StatusBadRequest
	case errors.ErrCodeUnknownStartVertex:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
