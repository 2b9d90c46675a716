package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
	Time      time.Time `json:"time"`
}

// ThemeResponse describes one theme in GET /api/themes
type ThemeResponse struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description,omitempty"`
	BackgroundStyle string `json:"background_style"`
	AccentColor     string `json:"accent_color"`
	BuiltIn         bool   `json:"built_in"`
}

// HealthResponse is the GET /api/health payload
type HealthResponse struct {
	Status  string    `json:"status"`
	Healthy bool      `json:"healthy"`
	Uptime  string    `json:"uptime"`
	Themes  int       `json:"themes"`
	Formats []string  `json:"formats"`
	Time    time.Time `json:"time"`
}

// MetricsResponse is the GET /api/metrics payload
type MetricsResponse struct {
	Metrics        monitoring.Metrics `json:"metrics"`
	AverageBuildMs int64              `json:"average_build_ms"`
	Uptime         string             `json:"uptime"`
	Time           time.Time          `json:"time"`
}

// GenerateRequest is the POST /generate payload, as JSON or form fields
type GenerateRequest struct {
	Topic  string `json:"topic"`
	Theme  string `json:"theme"`
	Format string `json:"format"`
}

type indexData struct {
	Themes  []entities.Theme
	Formats []string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>deckgenie</title>
<style>
body { font-family: Calibri, Arial, sans-serif; max-width: 40rem; margin: 3rem auto; color: #333; }
label { display: block; margin-top: 1rem; font-weight: bold; }
input, select { width: 100%; padding: .5rem; margin-top: .25rem; }
button { margin-top: 1.5rem; padding: .6rem 1.5rem; background: #2F5597; color: #fff; border: 0; }
</style>
</head>
<body>
<h1>Generate a presentation</h1>
<form method="post" action="/generate">
<label for="topic">Topic</label>
<input id="topic" name="topic" maxlength="500" required placeholder="e.g. The future of remote work">
<label for="theme">Theme</label>
<select id="theme" name="theme">
{{range .Themes}}<option value="{{.Name}}">{{.GetDisplayName}}</option>
{{end}}</select>
<label for="format">Format</label>
<select id="format" name="format">
{{range .Formats}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<button type="submit">Generate</button>
</form>
</body>
</html>
`))

// handleIndex serves the request form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	themes, err := s.service.Themes(r.Context())
	if err != nil {
		s.handleError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, indexData{Themes: themes, Formats: s.service.Formats()}); err != nil {
		s.logger.Error("Failed to write index page: %v", err)
	}
}

// handleGenerate builds a deck and returns it as a download
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	req, err := s.decodeGenerateRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleError(w, r, err, http.StatusRequestEntityTooLarge)
			return
		}
		s.handleError(w, r, err, http.StatusBadRequest)
		return
	}

	logger := s.logger.WithField("request_id", RequestID(r.Context()))
	logger.Debug("Generating deck: theme=%q format=%q", req.Theme, req.Format)

	start := time.Now()
	artifact, err := s.service.Generate(r.Context(), ports.DeckRequest{
		Topic:  req.Topic,
		Theme:  req.Theme,
		Format: req.Format,
	})
	if err != nil {
		status := statusFor(err)
		s.monitor.RecordFailure(failureKind(status))
		s.handleError(w, r, err, status)
		return
	}
	s.monitor.RecordDeck(time.Since(start), artifact.SlideCount)

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(artifact.Size()))
	w.Header().Set("X-Slide-Count", strconv.Itoa(artifact.SlideCount))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		logger.Error("Failed to write deck: %v", err)
	}
}

// decodeGenerateRequest reads a JSON or form body. User text is stripped of
// markup before it reaches the pipeline.
func (s *Server) decodeGenerateRequest(r *http.Request) (GenerateRequest, error) {
	var req GenerateRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return req, fmt.Errorf("decoding JSON body: %w", err)
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxRequestBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, fmt.Errorf("parsing form: %w", err)
		}
		req.Topic = r.PostFormValue("topic")
		req.Theme = r.PostFormValue("theme")
		req.Format = r.PostFormValue("format")
	default:
		return req, fmt.Errorf("unsupported content type %q", mediaType)
	}

	req.Topic = s.plainText(req.Topic)
	req.Theme = strings.ToLower(s.plainText(req.Theme))
	req.Format = strings.ToLower(s.plainText(req.Format))
	return req, nil
}

// plainText removes HTML from user input, keeping its text
func (s *Server) plainText(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}

// handleThemes lists the available themes
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.service.Themes(r.Context())
	if err != nil {
		s.handleError(w, r, err, http.StatusInternalServerError)
		return
	}

	response := make([]ThemeResponse, 0, len(themes))
	for i := range themes {
		theme := &themes[i]
		response = append(response, ThemeResponse{
			Name:            theme.Name,
			DisplayName:     theme.GetDisplayName(),
			Description:     theme.Description,
			BackgroundStyle: string(theme.BackgroundStyle),
			AccentColor:     theme.AccentColor,
			BuiltIn:         theme.IsBuiltIn(),
		})
	}

	s.writeJSON(w, r, response)
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	themes, err := s.service.Themes(r.Context())
	if err != nil {
		s.handleError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, r, HealthResponse{
		Status:  "ok",
		Healthy: s.monitor.IsHealthy(),
		Uptime:  s.monitor.Uptime().Round(time.Second).String(),
		Themes:  len(themes),
		Formats: s.service.Formats(),
		Time:    time.Now().UTC(),
	})
}

// handleMetrics reports request and build counters
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := s.monitor.Metrics()
	s.writeJSON(w, r, MetricsResponse{
		Metrics:        metrics,
		AverageBuildMs: metrics.AverageBuildTime.Milliseconds(),
		Uptime:         s.monitor.Uptime().Round(time.Second).String(),
		Time:           time.Now().UTC(),
	})
}

// failureKind groups failed builds for metrics
func failureKind(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "client"
	case http.StatusBadGateway:
		return "upstream"
	default:
		return "internal"
	}
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	var extErr *entities.ExternalServiceError
	var malformedErr *entities.MalformedResponseError

	switch {
	case entities.IsClientError(err):
		return http.StatusBadRequest
	case errors.As(err, &extErr), errors.As(err, &malformedErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError handles error responses with sanitized messages
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, status int) {
	// Sanitize error message to prevent information disclosure
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
		if entities.IsClientError(err) {
			// Validation messages describe the input, never internals
			message = s.plainText(err.Error())
		}
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusMethodNotAllowed:
		message = "Method not allowed"
	case http.StatusRequestEntityTooLarge:
		message = fmt.Sprintf("Request body exceeds %d bytes", maxRequestBytes)
	case http.StatusBadGateway:
		message = "The content service failed; please try again"
	case http.StatusServiceUnavailable:
		message = "Service unavailable"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	requestID := RequestID(r.Context())

	// Log the actual error for debugging (server-side only)
	s.logger.WithField("request_id", requestID).Error("HTTP error (status %d): %v", status, err)

	response := ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		RequestID: requestID,
		Time:      time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("Failed to encode error response: %v", encodeErr)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.handleError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		s.logger.Error("Failed to write JSON response: %v", err)
	}
}
