package handler

import (
	"context"
	"net/http"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MockUserService struct {
	createFunc  func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{ID: uuid.New(), Timezone: req.Timezone}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type MockSleepService struct {
	listFunc func(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
}

func (m *MockSleepService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepRecordListResponse{Data: []domain.SleepRecordResponse{}}, nil
}

type MockWorkHoursService struct {
	getFunc func(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*domain.WorkHoursResponse, error)
}

func (m *MockWorkHoursService) Get(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*domain.WorkHoursResponse, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, startDate, endDate)
	}
	return &domain.WorkHoursResponse{StartDate: startDate, EndDate: endDate}, nil
}

type MockIntegrationService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType, req *domain.UpsertIntegrationRequest) (*domain.Integration, error)
}

func (m *MockIntegrationService) Upsert(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType, req *domain.UpsertIntegrationRequest) (*domain.Integration, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, integrationType, req)
	}
	status := req.Status
	if status == "" {
		status = domain.IntegrationActive
	}
	return &domain.Integration{ID: uuid.New(), UserID: userID, Type: integrationType, Status: status}, nil
}

type MockJournalService struct {
	getEntryFunc      func(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error)
	putEntryFunc      func(ctx context.Context, userID uuid.UUID, date string, req *domain.PutJournalEntryRequest) (*domain.JournalEntry, error)
	getReflectionFunc func(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error)
	navigateFunc      func(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error)
}

func (m *MockJournalService) GetEntry(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error) {
	if m.getEntryFunc != nil {
		return m.getEntryFunc(ctx, userID, date)
	}
	return nil, domain.ErrNotFound
}

func (m *MockJournalService) PutEntry(ctx context.Context, userID uuid.UUID, date string, req *domain.PutJournalEntryRequest) (*domain.JournalEntry, error) {
	if m.putEntryFunc != nil {
		return m.putEntryFunc(ctx, userID, date, req)
	}
	return &domain.JournalEntry{ID: uuid.New(), UserID: userID, Date: date, Content: req.Content}, nil
}

func (m *MockJournalService) GetReflection(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error) {
	if m.getReflectionFunc != nil {
		return m.getReflectionFunc(ctx, userID, date)
	}
	return nil, domain.ErrNotFound
}

func (m *MockJournalService) PutReflection(ctx context.Context, userID uuid.UUID, date string, req *domain.PutReflectionRequest) (*domain.Reflection, error) {
	return &domain.Reflection{ID: uuid.New(), UserID: userID, Date: date, Content: req.Content, Themes: req.Themes}, nil
}

func (m *MockJournalService) NavigateReflection(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error) {
	if m.navigateFunc != nil {
		return m.navigateFunc(ctx, userID, date, direction)
	}
	return nil, domain.ErrNotFound
}

// withURLParams attaches chi route params the way the router would.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
