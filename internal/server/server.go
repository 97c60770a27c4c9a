// Package server exposes the converter over HTTP. It owns the multipart
// boundary: parsing uploads, option form fields, CORS, and the JSON response
// envelope. Conversion itself is delegated to pkg/convert.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jmylchreest/pagepress/internal/logger"
	"github.com/jmylchreest/pagepress/pkg/convert"
)

// maxUploadBytes caps in-memory multipart parsing.
const maxUploadBytes = 16 << 20

// response is the JSON envelope for every convert reply.
type response struct {
	Success bool   `json:"success"`
	HTML    string `json:"html,omitempty"`
	Method  string `json:"method,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server handles conversion requests. The converter is shared across
// requests; it holds no per-request state.
type Server struct {
	converter convert.Converter
}

// New creates a server around a converter. Pass the AI converter wrapped
// with convert.WithFallback to get the transparent rules fallback.
func New(converter convert.Converter) *Server {
	return &Server{converter: converter}
}

// Handler returns the HTTP handler for the conversion API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/convert", s.handleConvert)
	return mux
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		s.convert(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart body: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	input, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	opts := convert.Options{
		TemplateType: r.FormValue("template_type"),
		Platform:     r.FormValue("platform"),
	}

	result, err := s.converter.Convert(r.Context(), string(input), opts)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		HTML:    result.HTML,
		Method:  result.Method,
	})
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}
