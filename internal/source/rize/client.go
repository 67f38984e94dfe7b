package rize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRequest wraps transport failures and non-2xx responses from the Rize API.
var ErrRequest = errors.New("rize request failed")

// GraphQLError carries the errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "rize graphql: " + strings.Join(e.Messages, "; ")
}

const sessionsQuery = `query GetSessions($startTime: ISO8601DateTime!, $endTime: ISO8601DateTime!, $sort: TimeEntrySortEnum!) {
  sessions(startTime: $startTime, endTime: $endTime, sort: $sort) {
    id
    description
    createdAt
    startTime
    endTime
    title
    type
    source
  }
}`

const summariesQuery = `query GetSummaries($startDate: ISO8601Date!, $endDate: ISO8601Date!, $bucketSize: String!) {
  summaries(startDate: $startDate, endDate: $endDate, bucketSize: $bucketSize, includeCategories: true) {
    buckets {
      focusTime
      breakTime
      meetingTime
      trackedTime
      workHours
      date
      wday
      dailyMeetingTimeAverage
      dailyTrackedTimeAverage
      dailyFocusTimeAverage
      dailyWorkHoursAverage
    }
  }
}`

// Session is a Rize time entry.
type Session struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToWorkSession dates the session by its UTC start and truncates the duration to whole minutes.
func (s Session) ToWorkSession(userID uuid.UUID) domain.WorkSession {
	start := s.StartTime.UTC()
	end := s.EndTime.UTC()
	return domain.WorkSession{
		SessionID:       s.ID,
		UserID:          userID,
		Title:           s.Title,
		Description:     s.Description,
		Type:            s.Type,
		Source:          s.Source,
		StartTime:       start,
		EndTime:         end,
		Date:            start.Format(domain.DateLayout),
		DurationMinutes: int(end.Sub(start) / time.Minute),
		CreatedAt:       s.CreatedAt,
	}
}

// Bucket is one day of a Rize summary. Times are seconds.
type Bucket struct {
	FocusTime               float64 `json:"focusTime"`
	BreakTime               float64 `json:"breakTime"`
	MeetingTime             float64 `json:"meetingTime"`
	TrackedTime             float64 `json:"trackedTime"`
	WorkHours               float64 `json:"workHours"`
	Date                    string  `json:"date"`
	Wday                    string  `json:"wday"`
	DailyMeetingTimeAverage float64 `json:"dailyMeetingTimeAverage"`
	DailyTrackedTimeAverage float64 `json:"dailyTrackedTimeAverage"`
	DailyFocusTimeAverage   float64 `json:"dailyFocusTimeAverage"`
	DailyWorkHoursAverage   float64 `json:"dailyWorkHoursAverage"`
}

// ToWorkSummary keeps the local date portion of the bucket's date ("2024-06-09 00:00:00 -0700").
func (b Bucket) ToWorkSummary(userID uuid.UUID) (domain.WorkSummary, error) {
	local, _, _ := strings.Cut(strings.TrimSpace(b.Date), " ")
	if _, err := time.Parse(domain.DateLayout, local); err != nil {
		return domain.WorkSummary{}, fmt.Errorf("%w: bucket date %q", domain.ErrInvalidRecord, b.Date)
	}
	return domain.WorkSummary{
		UserID:                  userID,
		Date:                    local,
		Wday:                    b.Wday,
		FocusTime:               int(b.FocusTime),
		BreakTime:               int(b.BreakTime),
		MeetingTime:             int(b.MeetingTime),
		TrackedTime:             int(b.TrackedTime),
		WorkHours:               int(b.WorkHours),
		DailyMeetingTimeAverage: int(b.DailyMeetingTimeAverage),
		DailyTrackedTimeAverage: int(b.DailyTrackedTimeAverage),
		DailyFocusTimeAverage:   int(b.DailyFocusTimeAverage),
		DailyWorkHoursAverage:   int(b.DailyWorkHoursAverage),
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client queries the Rize GraphQL API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: rc, logger: logger}
}

// FetchSessions returns the sessions between start and end sorted by start time.
func (c *Client) FetchSessions(ctx context.Context, token string, start, end time.Time) ([]Session, error) {
	var data struct {
		Sessions []Session `json:"sessions"`
	}
	err := c.execute(ctx, token, sessionsQuery, map[string]any{
		"startTime": start.UTC().Format(time.RFC3339),
		"endTime":   end.UTC().Format(time.RFC3339),
		"sort":      "start_time",
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.Sessions, nil
}

// FetchSummaries returns daily buckets for the inclusive date range.
func (c *Client) FetchSummaries(ctx context.Context, token string, start, end time.Time) ([]Bucket, error) {
	var data struct {
		Summaries *struct {
			Buckets []Bucket `json:"buckets"`
		} `json:"summaries"`
	}
	err := c.execute(ctx, token, summariesQuery, map[string]any{
		"startDate":  start.Format(domain.DateLayout),
		"endDate":    end.Format(domain.DateLayout),
		"bucketSize": "day",
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Summaries == nil {
		return nil, nil
	}
	return data.Summaries.Buckets, nil
}

func (c *Client) execute(ctx context.Context, token, query string, variables map[string]any, out any) error {
	var body graphqlResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(graphqlRequest{Query: query, Variables: variables}).
		SetResult(&body).
		Post("/graphql")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if resp.IsError() {
		c.logger.Error("Rize API returned error", zap.Int("status_code", resp.StatusCode()))
		return fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode())
	}

	if len(body.Errors) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range body.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return gqlErr
	}

	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("decode rize data: %w", err)
	}
	return nil
}
