package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"assembly-rag/internal/contextutil"
	"assembly-rag/internal/retrieval"
	"assembly-rag/internal/service"
)

// AskHandler handles HTTP requests for questions about the assembly minutes.
type AskHandler struct {
	askService service.AskService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(askService service.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// AskRequest represents the HTTP request payload for a question.
//
// swagger:model AskRequest
type AskRequest struct {
	Query string `json:"query"`
	// Result budget; omitted or zero selects the server default.
	K int `json:"k,omitempty"`
	// One of internal_only, external_priority, hybrid_balanced, hybrid_internal_priority.
	Strategy string `json:"strategy,omitempty"`

	AssemblyNumber string `json:"assembly_number,omitempty"`
	MinutesType    string `json:"minutes_type,omitempty"`
	SpeakerName    string `json:"speaker_name,omitempty"`
}

// AskResponse represents the HTTP response payload for a question.
//
// swagger:model AskResponse
type AskResponse struct {
	Answer         string `json:"answer"`
	SearchStrategy string `json:"search_strategy"`
	InternalCount  int    `json:"internal_count"`
	ExternalCount  int    `json:"external_count"`
	// Seconds spent on the whole run.
	ProcessingTime  float64      `json:"processing_time"`
	StepCount       int          `json:"step_count"`
	InternalResults []ResultItem `json:"internal_results"`
	ExternalResults []ResultItem `json:"external_results"`
	// Error is set when the run ended without a generated answer.
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// ResultItem is one retrieved document.
//
// swagger:model ResultItem
type ResultItem struct {
	SourceType string  `json:"source_type"`
	SourceName string  `json:"source_name"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`

	DocumentID     string `json:"document_id,omitempty"`
	SpeakerName    string `json:"speaker_name,omitempty"`
	Position       string `json:"position,omitempty"`
	MinutesDate    string `json:"minutes_date,omitempty"`
	AssemblyNumber string `json:"assembly_number,omitempty"`
	SessionNumber  string `json:"session_number,omitempty"`
	MinutesType    string `json:"minutes_type,omitempty"`

	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/v1/ask askQuestion
//
// # Ask a question
//
// Routes the question to the minutes index, web search or both and returns a
// spoken-language answer with the documents it was based on. Runs that end
// without a generated answer still return 200 with error=true.
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Malformed body or invalid parameters
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.askService.Ask(ctx, service.AskRequest{
		Query:          req.Query,
		K:              req.K,
		Strategy:       req.Strategy,
		AssemblyNumber: req.AssemblyNumber,
		MinutesType:    req.MinutesType,
		SpeakerName:    req.SpeakerName,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to process question")
		return
	}

	resp := AskResponse{
		Answer:          svcResp.Answer,
		SearchStrategy:  svcResp.Strategy.String(),
		InternalCount:   len(svcResp.Internal),
		ExternalCount:   len(svcResp.External),
		ProcessingTime:  svcResp.ProcessingTime.Seconds(),
		StepCount:       svcResp.StepCount,
		InternalResults: toResultItems(svcResp.Internal),
		ExternalResults: toResultItems(svcResp.External),
	}
	if !svcResp.Success() {
		resp.Error = true
		resp.ErrorMessage = string(svcResp.Reason)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func toResultItems(docs []retrieval.Document) []ResultItem {
	items := make([]ResultItem, 0, len(docs))
	for _, d := range docs {
		item := ResultItem{
			SourceType: string(d.SourceType),
			SourceName: d.SourceName,
			Content:    d.Content,
			Score:      d.Score,
		}
		if m := d.Statement; m != nil {
			item.DocumentID = m.DocumentID
			item.SpeakerName = m.SpeakerName
			item.Position = m.Position
			item.MinutesDate = m.MinutesDate
			item.AssemblyNumber = m.AssemblyNumber
			item.SessionNumber = m.SessionNumber
			item.MinutesType = m.MinutesType
		}
		if m := d.Web; m != nil {
			item.Title = m.Title
			item.URL = m.URL
		}
		items = append(items, item)
	}
	return items
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "request validation failed", "field", validationErr.Field, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}
	if errors.Is(err, service.ErrInvalidInput) {
		logger.WarnContext(ctx, "invalid input", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)
	writeError(w, http.StatusInternalServerError, defaultMsg)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
