package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kritika1265/chartkit/pkg/buildinfo"
	"github.com/kritika1265/chartkit/pkg/chartfile"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/httputil"
	"github.com/kritika1265/chartkit/pkg/pipeline"
	"github.com/kritika1265/chartkit/pkg/store"
)

// maxBodyBytes caps request bodies. Definitions are small documents;
// anything near this limit is not a chart.
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRender renders the definition in the request body and responds
// with the artifact for the requested format.
//
//	POST /api/render?format=png&width=1024&height=768&refresh=true
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	def, err := readDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q, err := parseRenderQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, def, q)
}

// handleCreateChart validates and saves a named chart definition.
//
//	POST /api/charts {"name": "revenue", "definition": {...}}
func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	var req createChartRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	if err := apperrors.ValidateChartName(req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Definition.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Saved charts are rendered later by ID on this host, so definitions
	// must not reference the submitting client's local files.
	if ref := req.Definition.Data.File; ref != "" && !httputil.IsURL(ref) {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidPath,
			"saved charts cannot reference local files: %q", ref))
		return
	}

	chart := store.New(req.Name, req.Definition)
	if err := s.store.Save(r.Context(), chart); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, chart)
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listChartsResponse{Charts: charts, Count: len(charts)})
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	chart, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, chart)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderChart renders a saved chart by ID. Repeat renders of an
// unchanged chart are served from the runner's artifact cache.
//
//	GET /api/charts/{id}/render?format=svg
func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	id, err := chartID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	chart, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q, err := parseRenderQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, &chart.Definition, q)
}

// render executes the pipeline for a single format and writes the artifact.
func (s *Server) render(w http.ResponseWriter, r *http.Request, def *chartfile.Definition, q renderQuery) {
	opts := pipeline.Options{
		Definition: def,
		Formats:    []string{q.format},
		Width:      q.width,
		Height:     q.height,
		Refresh:    q.refresh,
		RemoteOnly: true,
		Logger:     s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(q.format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifacts[q.format]); err != nil {
		s.logger.Error("write artifact", "error", err)
	}
}

type createChartRequest struct {
	Name       string               `json:"name"`
	Definition chartfile.Definition `json:"definition"`
}

type listChartsResponse struct {
	Charts []*store.Chart `json:"charts"`
	Count  int            `json:"count"`
}

type renderQuery struct {
	format        string
	width, height float64
	refresh       bool
}

// parseRenderQuery extracts render parameters from the query string.
// Format defaults to SVG.
func parseRenderQuery(r *http.Request) (renderQuery, error) {
	q := renderQuery{format: pipeline.FormatSVG}
	vals := r.URL.Query()

	if f := vals.Get("format"); f != "" {
		q.format = f
	}
	if err := pipeline.ValidateFormat(q.format); err != nil {
		return q, err
	}

	var err error
	if v := vals.Get("width"); v != "" {
		if q.width, err = strconv.ParseFloat(v, 64); err != nil {
			return q, apperrors.New(apperrors.ErrCodeInvalidSurface, "invalid width %q", v)
		}
	}
	if v := vals.Get("height"); v != "" {
		if q.height, err = strconv.ParseFloat(v, 64); err != nil {
			return q, apperrors.New(apperrors.ErrCodeInvalidSurface, "invalid height %q", v)
		}
	}
	if v := vals.Get("refresh"); v != "" {
		if q.refresh, err = strconv.ParseBool(v); err != nil {
			return q, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid refresh %q", v)
		}
	}
	return q, nil
}

// readDefinition decodes the request body as a chart definition. TOML
// content types are accepted alongside the JSON default, so a chart.toml
// can be curl'd straight at the API.
func readDefinition(w http.ResponseWriter, r *http.Request) (*chartfile.Definition, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body")
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/toml", "text/toml", "text/x-toml":
		return chartfile.Parse(body)
	default:
		return chartfile.ParseJSON(body)
	}
}

func chartID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid chart id %q", raw)
	}
	return id, nil
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatTerm:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	s.writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}

// statusForCode maps error codes to HTTP statuses. Unknown and empty
// codes are treated as internal errors.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidKind,
		apperrors.ErrCodeInvalidDefinition, apperrors.ErrCodeInvalidDataset,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidPalette,
		apperrors.ErrCodeInvalidSurface, apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeChartNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
