package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/retrieval"
	"assembly-rag/internal/routing"
	"assembly-rag/internal/service"
	"assembly-rag/internal/service/mocks"
)

func TestAskHandler_ServeHTTP(t *testing.T) {
	internalDoc := retrieval.Document{
		SourceType: retrieval.SourceInternal,
		Content:    "저출생 대책을 질의함",
		Score:      0.82,
		SourceName: retrieval.SourceNameMinutes,
		Statement:  &retrieval.StatementMeta{DocumentID: "m1_1", SpeakerName: "홍길동", Position: "위원", MinutesDate: "2024-03-05"},
	}
	webDoc := retrieval.Document{
		SourceType: retrieval.SourceExternal,
		Content:    "출생률 통계",
		Score:      0.5,
		SourceName: retrieval.SourceNameWeb,
		Web:        &retrieval.WebMeta{Title: "통계청 발표", URL: "https://example.com/a"},
	}

	tests := []struct {
		name           string
		method         string
		body           string
		mockSetup      func(*mocks.MockAskService)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "successful answer",
			method: http.MethodPost,
			body:   `{"query":"저출생 대책","k":4,"strategy":"hybrid_balanced","assembly_number":"21"}`,
			mockSetup: func(m *mocks.MockAskService) {
				m.EXPECT().
					Ask(gomock.Any(), service.AskRequest{Query: "저출생 대책", K: 4, Strategy: "hybrid_balanced", AssemblyNumber: "21"}).
					Return(service.AskResponse{
						Answer:         "답변입니다",
						Strategy:       routing.HybridBalanced,
						Internal:       []retrieval.Document{internalDoc},
						External:       []retrieval.Document{webDoc},
						StepCount:      4,
						ProcessingTime: 1500 * time.Millisecond,
						Reason:         agent.ReasonSuccess,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var fields map[string]json.RawMessage
				if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if _, ok := fields["error_message"]; !ok {
					t.Error("response is missing the error_message key")
				}

				var resp AskResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Answer != "답변입니다" || resp.SearchStrategy != "hybrid_balanced" || resp.Error {
					t.Errorf("response = %+v", resp)
				}
				if resp.InternalCount != 1 || resp.ExternalCount != 1 || resp.StepCount != 4 || resp.ProcessingTime != 1.5 {
					t.Errorf("response counters = %+v", resp)
				}
				if len(resp.InternalResults) != 1 || resp.InternalResults[0].SpeakerName != "홍길동" || resp.InternalResults[0].SourceType != "internal" {
					t.Errorf("internal results = %+v", resp.InternalResults)
				}
				if len(resp.ExternalResults) != 1 || resp.ExternalResults[0].URL != "https://example.com/a" {
					t.Errorf("external results = %+v", resp.ExternalResults)
				}
			},
		},
		{
			name:   "no results reported as error with 200",
			method: http.MethodPost,
			body:   `{"query":"알 수 없는 질문"}`,
			mockSetup: func(m *mocks.MockAskService) {
				m.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(service.AskResponse{
					Answer:    agent.NoResultsAnswer,
					Strategy:  routing.HybridInternalPriority,
					StepCount: 3,
					Reason:    agent.ReasonNoResults,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp AskResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !resp.Error || resp.ErrorMessage != "no results" || resp.Answer != agent.NoResultsAnswer {
					t.Errorf("response = %+v", resp)
				}
				if resp.InternalResults == nil || resp.ExternalResults == nil {
					t.Error("result lists should encode as empty arrays")
				}
			},
		},
		{
			name:           "malformed body",
			method:         http.MethodPost,
			body:           `{"query":`,
			mockSetup:      func(m *mocks.MockAskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   `{"query":"질문","strategy":"fastest"}`,
			mockSetup: func(m *mocks.MockAskService) {
				m.EXPECT().Ask(gomock.Any(), gomock.Any()).
					Return(service.AskResponse{}, &service.ValidationError{Field: "strategy", Message: "unknown"})
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Error != "Validation error: validation error on field strategy: unknown" {
					t.Errorf("error = %q", resp.Error)
				}
			},
		},
		{
			name:   "unexpected service error",
			method: http.MethodPost,
			body:   `{"query":"질문"}`,
			mockSetup: func(m *mocks.MockAskService) {
				m.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(service.AskResponse{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			mockSetup:      func(m *mocks.MockAskService) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mocks.NewMockAskService(ctrl)
			tt.mockSetup(svc)
			handler := NewAskHandler(svc)

			req := httptest.NewRequest(tt.method, "/api/v1/ask", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}
