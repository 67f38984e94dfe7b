package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/pkg/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestSleepHandler_List(t *testing.T) {
	userID := uuid.New()
	validCursor := (&pagination.Cursor{ID: uuid.New()}).Encode()

	tests := []struct {
		name           string
		query          string
		mockService    *MockSleepService
		wantStatusCode int
		wantFilter     *domain.SleepRecordFilter
	}{
		{
			name:           "defaults",
			query:          "",
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusOK,
			wantFilter:     &domain.SleepRecordFilter{},
		},
		{
			name:           "naps in range",
			query:          "?kind=nap&from=2024-06-01&to=2024-06-30&limit=10",
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusOK,
			wantFilter:     &domain.SleepRecordFilter{Kind: domain.SleepKindNap, From: "2024-06-01", To: "2024-06-30", Limit: 10},
		},
		{
			name:           "cursor passed through",
			query:          "?cursor=" + validCursor,
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusOK,
			wantFilter:     &domain.SleepRecordFilter{Cursor: validCursor},
		},
		{
			name:           "unknown kind",
			query:          "?kind=siesta",
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad date",
			query:          "?from=06/01/2024",
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "limit too large",
			query:          "?limit=1000",
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "garbage cursor",
			query:          "?cursor=!!!",
			mockService:    &MockSleepService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:  "user missing",
			query: "",
			mockService: &MockSleepService{
				listFunc: func(ctx context.Context, id uuid.UUID, f domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:  "repository failure",
			query: "",
			mockService: &MockSleepService{
				listFunc: func(ctx context.Context, id uuid.UUID, f domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
					return nil, errors.New("boom")
				},
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.SleepRecordFilter
			if tt.mockService.listFunc == nil {
				tt.mockService.listFunc = func(ctx context.Context, id uuid.UUID, f domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
					got = &f
					return &domain.SleepRecordListResponse{Data: []domain.SleepRecordResponse{}}, nil
				}
			}
			handler := NewSleepHandler(tt.mockService, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/sleep"+tt.query, nil)
			req = withURLParams(req, map[string]string{"userId": userID.String()})
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if tt.wantFilter != nil {
				if got == nil {
					t.Fatal("service was not called")
				}
				if *got != *tt.wantFilter {
					t.Errorf("filter = %+v, want %+v", *got, *tt.wantFilter)
				}
			}
		})
	}
}
