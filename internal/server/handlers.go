package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/cardpress/pkg/buildinfo"
	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/config"
	"github.com/matzehuels/cardpress/pkg/errors"
	"github.com/matzehuels/cardpress/pkg/pipeline"
	"github.com/matzehuels/cardpress/pkg/render/card/layout"
	"github.com/matzehuels/cardpress/pkg/render/card/sink"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleCardSVG renders one card. The "theme" query parameter forces a
// named theme.
func (s *Server) handleCardSVG(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.layoutCard(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(sink.RenderSVG(doc))
}

func (s *Server) handleCardLayout(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.layoutCard(w, r)
	if !ok {
		return
	}
	data, err := sink.RenderJSON(doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) layoutCard(w http.ResponseWriter, r *http.Request) (layout.Document, bool) {
	var c card.Card
	if err := decodeBody(r, &c); err != nil {
		writeError(w, r, err)
		return layout.Document{}, false
	}
	doc, err := s.runner.Layout(r.Context(), c, r.URL.Query().Get("theme"))
	if err != nil {
		writeError(w, r, err)
		return layout.Document{}, false
	}
	return doc, true
}

// SheetRequest describes a sheet to plan. Zero fields take the print
// defaults.
type SheetRequest struct {
	Orientation string `json:"orientation,omitempty"`
	DPI         int    `json:"dpi,omitempty"`
	Cols        int    `json:"cols,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Margin      *int   `json:"margin,omitempty"`
	Gutter      *int   `json:"gutter,omitempty"`
	CardWidth   int    `json:"card_width,omitempty"`
	CardHeight  int    `json:"card_height,omitempty"`
	Crop        bool   `json:"crop,omitempty"`
	Count       int    `json:"count"`
}

// print overlays the request on the default print settings.
func (req SheetRequest) print() config.Print {
	p := config.Default().Print
	if req.Orientation != "" {
		p.Orientation = req.Orientation
	}
	if req.DPI != 0 {
		p.DPI = req.DPI
	}
	if req.Cols != 0 {
		p.Cols = req.Cols
	}
	if req.Rows != 0 {
		p.Rows = req.Rows
	}
	if req.Margin != nil {
		p.Margin = *req.Margin
	}
	if req.Gutter != nil {
		p.Gutter = *req.Gutter
	}
	if req.CardWidth != 0 {
		p.CardWidth = req.CardWidth
	}
	if req.CardHeight != 0 {
		p.CardHeight = req.CardHeight
	}
	p.Crop = req.Crop
	return p
}

func (s *Server) handleSheetLayout(w http.ResponseWriter, r *http.Request) {
	var req SheetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	spec, err := req.print().Spec()
	if err != nil {
		writeError(w, r, err)
		return
	}
	plan, err := pipeline.PlanSheet(spec, req.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// =============================================================================
// Encoding
// =============================================================================

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeEmptyInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusOf(code), errorBody{
		Code:      string(code),
		Error:     errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

// statusOf maps an error code to an HTTP status.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeEmptyInput:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidTheme:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeCardNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRasterization:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
