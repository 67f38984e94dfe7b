package oura

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrRequest wraps transport failures and non-2xx responses from the Oura API.
var ErrRequest = errors.New("oura request failed")

type sleepPage struct {
	Data      []domain.RawSleepSession `json:"data"`
	NextToken *string                  `json:"next_token"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// Client reads sleep sessions from the Oura v2 usercollection API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{http: rc, logger: logger}
}

// FetchSleep returns every sleep session whose day lies in [start, end], following next_token pages.
func (c *Client) FetchSleep(ctx context.Context, token string, start, end time.Time) ([]domain.RawSleepSession, error) {
	params := map[string]string{
		"start_date": start.Format(domain.DateLayout),
		"end_date":   end.Format(domain.DateLayout),
	}

	var sessions []domain.RawSleepSession
	for {
		var page sleepPage
		var apiErr errorBody
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParams(params).
			SetResult(&page).
			SetError(&apiErr).
			Get("/sleep")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequest, err)
		}
		if resp.IsError() {
			c.logger.Error("Oura API returned error",
				zap.Int("status_code", resp.StatusCode()),
				zap.String("detail", apiErr.Detail),
			)
			return nil, fmt.Errorf("%w: status %d: %s", ErrRequest, resp.StatusCode(), apiErr.Detail)
		}

		sessions = append(sessions, page.Data...)
		if page.NextToken == nil || *page.NextToken == "" {
			break
		}
		params["next_token"] = *page.NextToken
	}

	c.logger.Debug("Fetched Oura sleep sessions",
		zap.Int("count", len(sessions)),
		zap.String("start_date", params["start_date"]),
		zap.String("end_date", params["end_date"]),
	)
	return sessions, nil
}
