package service

import (
	"context"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/source/rize"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockSleepRepository records the last ReplaceWindow call.
type MockSleepRepository struct {
	mains   []domain.SleepRecord
	naps    []domain.NapRecord
	window  domain.SyncWindow
	calls   int
	offsets map[string]int
	latest  string
	err     error
}

func NewMockSleepRepository() *MockSleepRepository {
	return &MockSleepRepository{offsets: make(map[string]int)}
}

func (m *MockSleepRepository) ReplaceWindow(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, mains []domain.SleepRecord, naps []domain.NapRecord) error {
	if m.err != nil {
		return m.err
	}
	m.calls++
	m.window = window
	m.mains = mains
	m.naps = naps
	return nil
}

func (m *MockSleepRepository) ListMain(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.mains, nil
}

func (m *MockSleepRepository) ListNaps(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.NapRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.naps, nil
}

func (m *MockSleepRepository) OffsetsByDate(ctx context.Context, userID uuid.UUID, from, to string) (map[string]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]int)
	for d, off := range m.offsets {
		if d >= from && d <= to {
			out[d] = off
		}
	}
	return out, nil
}

func (m *MockSleepRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.latest, m.err
}

// MockWorkRepository keeps sessions in memory.
type MockWorkRepository struct {
	sessions   []domain.WorkSession
	summaries  []domain.WorkSummary
	fetchedIDs []string
	deleted    int64
	listCalls  int
	latest     string
	err        error
}

func (m *MockWorkRepository) ReplaceSessions(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, sessions []domain.WorkSession, fetchedIDs []string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.sessions = sessions
	m.fetchedIDs = fetchedIDs
	return m.deleted, nil
}

func (m *MockWorkRepository) UpsertSummaries(ctx context.Context, summaries []domain.WorkSummary) error {
	if m.err != nil {
		return m.err
	}
	m.summaries = summaries
	return nil
}

func (m *MockWorkRepository) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.WorkSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.listCalls++
	var out []domain.WorkSession
	for _, s := range m.sessions {
		if s.StartTime.Before(to) && s.EndTime.After(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockWorkRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.latest, m.err
}

// MockIntegrationRepository keys integrations by user and type.
type MockIntegrationRepository struct {
	integrations map[string]*domain.Integration
	statuses     map[uuid.UUID]string
	err          error
}

func NewMockIntegrationRepository() *MockIntegrationRepository {
	return &MockIntegrationRepository{
		integrations: make(map[string]*domain.Integration),
		statuses:     make(map[uuid.UUID]string),
	}
}

func integrationKey(userID uuid.UUID, t domain.IntegrationType) string {
	return userID.String() + ":" + string(t)
}

func (m *MockIntegrationRepository) Add(integration domain.Integration) {
	if integration.ID == uuid.Nil {
		integration.ID = uuid.New()
	}
	m.integrations[integrationKey(integration.UserID, integration.Type)] = &integration
}

func (m *MockIntegrationRepository) ListActive(ctx context.Context, integrationType domain.IntegrationType) ([]domain.Integration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Integration
	for _, in := range m.integrations {
		if in.Type == integrationType && in.Status == domain.IntegrationActive {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (m *MockIntegrationRepository) Get(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType) (*domain.Integration, error) {
	if m.err != nil {
		return nil, m.err
	}
	in, ok := m.integrations[integrationKey(userID, integrationType)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return in, nil
}

func (m *MockIntegrationRepository) Upsert(ctx context.Context, integration *domain.Integration) error {
	if m.err != nil {
		return m.err
	}
	key := integrationKey(integration.UserID, integration.Type)
	if existing, ok := m.integrations[key]; ok {
		existing.AccessToken = integration.AccessToken
		existing.Status = integration.Status
		return nil
	}
	stored := *integration
	m.integrations[key] = &stored
	return nil
}

func (m *MockIntegrationRepository) UpdateSyncStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.statuses[id] = status
	return nil
}

type MockFinanceRepository struct {
	txs     []domain.FinanceTransaction
	window  domain.SyncWindow
	latest  string
	deleted int64
	err     error
}

func (m *MockFinanceRepository) ReplaceTransactions(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, txs []domain.FinanceTransaction) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.window = window
	m.txs = txs
	return m.deleted, nil
}

func (m *MockFinanceRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.latest, m.err
}

type MockVitalsRepository struct {
	entries []domain.VitalsEntry
	latest  string
	err     error
}

func (m *MockVitalsRepository) Upsert(ctx context.Context, entries []domain.VitalsEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = entries
	return nil
}

func (m *MockVitalsRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.latest, m.err
}

// mockSleepFetcher returns canned sessions per access token.
type mockSleepFetcher struct {
	byToken map[string][]domain.RawSleepSession
	errs    map[string]error
	start   time.Time
	end     time.Time
}

func (m *mockSleepFetcher) FetchSleep(ctx context.Context, token string, start, end time.Time) ([]domain.RawSleepSession, error) {
	m.start, m.end = start, end
	if err := m.errs[token]; err != nil {
		return nil, err
	}
	return m.byToken[token], nil
}

type mockWorkFetcher struct {
	sessions  []rize.Session
	buckets   []rize.Bucket
	err       error
	fromStart time.Time
	fromEnd   time.Time
}

func (m *mockWorkFetcher) FetchSessions(ctx context.Context, token string, start, end time.Time) ([]rize.Session, error) {
	m.fromStart, m.fromEnd = start, end
	return m.sessions, m.err
}

func (m *mockWorkFetcher) FetchSummaries(ctx context.Context, token string, start, end time.Time) ([]rize.Bucket, error) {
	return m.buckets, m.err
}

type journalKey struct {
	userID uuid.UUID
	date   string
}

// MockJournalRepository keeps entries and reflections keyed by (user, date).
type MockJournalRepository struct {
	entries     map[journalKey]*domain.JournalEntry
	reflections map[journalKey]*domain.Reflection
	err         error
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries:     make(map[journalKey]*domain.JournalEntry),
		reflections: make(map[journalKey]*domain.Reflection),
	}
}

func (m *MockJournalRepository) GetEntry(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[journalKey{userID, date}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *MockJournalRepository) UpsertEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if m.err != nil {
		return m.err
	}
	key := journalKey{entry.UserID, entry.Date}
	if existing, ok := m.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		entry.ID = uuid.New()
	}
	m.entries[key] = entry
	return nil
}

func (m *MockJournalRepository) GetReflection(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.reflections[journalKey{userID, date}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *MockJournalRepository) UpsertReflection(ctx context.Context, reflection *domain.Reflection) error {
	if m.err != nil {
		return m.err
	}
	key := journalKey{reflection.UserID, reflection.Date}
	if existing, ok := m.reflections[key]; ok {
		reflection.ID = existing.ID
	} else {
		reflection.ID = uuid.New()
	}
	m.reflections[key] = reflection
	return nil
}

func (m *MockJournalRepository) AdjacentReflection(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error) {
	if m.err != nil {
		return nil, m.err
	}
	var best *domain.Reflection
	for key, r := range m.reflections {
		if key.userID != userID {
			continue
		}
		switch direction {
		case domain.DirectionPrev:
			if r.Date < date && (best == nil || r.Date > best.Date) {
				best = r
			}
		case domain.DirectionNext:
			if r.Date > date && (best == nil || r.Date < best.Date) {
				best = r
			}
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}
