package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/JonMunkholm/pcc/internal/core"
	"github.com/JonMunkholm/pcc/internal/logging"
	"github.com/JonMunkholm/pcc/internal/render"
	"github.com/JonMunkholm/pcc/internal/web/templates"
)

// maxJSONOverhead bounds JSON bodies beyond the CSV they carry; escaping
// can at most double the text, so bodies are capped at twice the input
// limit plus this much.
const maxJSONOverhead = 64 << 10

// handleIndex renders the empty analysis page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.Index("", nil).Render(r.Context(), w)
}

// handleAnalyzeForm analyzes the submitted form and renders the report,
// as a full page or, for HTMX requests, as a fragment.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	input, err := s.formInput(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	a, err := s.service.Analyze(withAnalysisID(w, r), input)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		_ = s.service.Report(a).Render(r.Context(), w)
		return
	}
	_ = templates.Index(input, s.service.Report(a)).Render(r.Context(), w)
}

// formInput returns the csv field, or the uploaded file when the field is
// empty.
func (s *Server) formInput(w http.ResponseWriter, r *http.Request) (string, error) {
	limit := s.service.Options().MaxInputBytes
	r.Body = http.MaxBytesReader(w, r.Body, 2*limit+maxJSONOverhead)

	var err error
	if mediaType(r) == "multipart/form-data" {
		err = r.ParseMultipartForm(limit)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return "", err
	}

	if input := r.PostForm.Get("csv"); input != "" {
		return input, nil
	}

	file, _, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", core.ErrEmptyInput
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return core.ReadInput(file, limit)
}

// analyzeRequest is the JSON form of a CSV submission.
type analyzeRequest struct {
	CSV string `json:"csv"`
}

// handleAPIAnalyze returns the analysis of the CSV body as JSON.
func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	input, err := s.bodyInput(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	a, err := s.service.Analyze(withAnalysisID(w, r), input)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	logging.FromContext(r.Context()).Debug("analysis served", "analysis_id", a.ID.String())
	writeJSON(w, r, http.StatusOK, a)
}

// handleAPITable returns the CSV body as an HTML table fragment.
func (s *Server) handleAPITable(w http.ResponseWriter, r *http.Request) {
	input, err := s.bodyInput(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	t, err := s.service.ParseTable(input)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = render.Table(t).Render(r.Context(), w)
}

// bodyInput reads CSV from a JSON {"csv": ...} body or a raw text body.
func (s *Server) bodyInput(w http.ResponseWriter, r *http.Request) (string, error) {
	limit := s.service.Options().MaxInputBytes

	if !isJSONBody(r) {
		return core.ReadInput(r.Body, limit)
	}

	var req analyzeRequest
	if err := decodeJSON(w, r, 2*limit+maxJSONOverhead, &req); err != nil {
		return "", err
	}
	return req.CSV, nil
}

type similarityRequest struct {
	A []float64 `json:"a"`
	B []float64 `json:"b"`
}

// handleAPISimilarity returns Pearson and cosine similarity of two vectors.
func (s *Server) handleAPISimilarity(w http.ResponseWriter, r *http.Request) {
	var req similarityRequest
	if err := decodeJSON(w, r, s.service.Options().MaxInputBytes, &req); err != nil {
		respondError(w, r, err, 0)
		return
	}

	sim, err := s.service.Similarity(req.A, req.B)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, r, http.StatusOK, sim)
}

type scatterRequest struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
}

// handleAPIScatter returns an SVG scatter plot of the two series.
func (s *Server) handleAPIScatter(w http.ResponseWriter, r *http.Request) {
	var req scatterRequest
	if err := decodeJSON(w, r, s.service.Options().MaxInputBytes, &req); err != nil {
		respondError(w, r, err, 0)
		return
	}

	svg, err := s.service.ScatterValues(req.X, req.Y, req.Width, req.Height)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = io.WriteString(w, svg)
}

type healthResponse struct {
	Status   string             `json:"status"`
	Analyses core.LimiterStatus `json:"analyses"`
}

// handleHealth reports liveness and analysis slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if s.limiter != nil {
		resp.Analyses = s.limiter.Status()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// decodeJSON decodes a single JSON value from a body capped at limit bytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", core.ErrInputTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", core.ErrMalformedRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON value", core.ErrMalformedRequest)
	}
	return nil
}

func isJSONBody(r *http.Request) bool {
	return mediaType(r) == "application/json"
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}
