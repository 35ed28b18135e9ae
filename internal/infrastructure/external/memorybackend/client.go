// Package memorybackend implements the memory backend client: an HTTP client
// for the MeetingMind REST/SSE API and an in-memory mock for development.
package memorybackend

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// maxErrorBodySize bounds how much of an error response is read
const maxErrorBodySize int64 = 64 * 1024

// Client talks to the memory backend over HTTP
type Client struct {
	baseURL       string
	httpClient    *http.Client // request/response calls, carries the timeout
	streamClient  *http.Client // briefing streams, no timeout
	maxRetries    uint64
	retryInterval time.Duration
	logger        *zap.Logger
}

var _ repositories.MemoryBackend = (*Client)(nil)

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxRetries sets how many times an idempotent GET is retried after a
// transient failure
func WithMaxRetries(n uint64) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithRetryInterval sets the initial backoff between retries
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// WithHTTPClient replaces the request/response client. Streams keep using a
// client without timeout that shares its transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc == nil {
			return
		}
		c.httpClient = hc
		c.streamClient = &http.Client{Transport: hc.Transport}
	}
}

// NewClient creates a backend client. timeout applies to every call except
// briefing streams.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		streamClient:  &http.Client{},
		maxRetries:    3,
		retryInterval: 250 * time.Millisecond,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitMeeting posts a meeting for processing
func (c *Client) SubmitMeeting(ctx context.Context, input entities.MeetingInput) (*entities.SubmitResult, error) {
	var out entities.SubmitResult
	if err := c.call(ctx, "submit meeting", http.MethodPost, "/api/meetings", nil, input, &out); err != nil {
		return nil, errors.ErrMeetingSubmitFailed(err)
	}
	c.logger.Info("✅ Meeting submitted",
		zap.String("meeting_id", out.MeetingID),
		zap.String("status", string(out.Status)),
	)
	return &out, nil
}

// GetMeeting fetches one meeting
func (c *Client) GetMeeting(ctx context.Context, id string) (*entities.Meeting, error) {
	if id == "" {
		return nil, errors.ErrInvalidArgument("meeting id is required")
	}
	var dto meetingDTO
	err := c.call(ctx, "get meeting", http.MethodGet, "/api/meetings/"+url.PathEscape(id), nil, nil, &dto)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrMeetingNotFound(id)
		}
		return nil, err
	}
	m := dto.toEntity()
	return &m, nil
}

// GetMeetings lists meetings, newest first
func (c *Client) GetMeetings(ctx context.Context, filter entities.MeetingFilter) ([]entities.Meeting, error) {
	q := url.Values{}
	if filter.Participant != "" {
		q.Set("participant", filter.Participant)
	}
	var dtos []meetingDTO
	if err := c.call(ctx, "list meetings", http.MethodGet, "/api/meetings", q, nil, &dtos); err != nil {
		return nil, err
	}
	meetings := make([]entities.Meeting, 0, len(dtos))
	for _, d := range dtos {
		meetings = append(meetings, d.toEntity())
	}
	return meetings, nil
}

// GetCommitments lists commitments. The backend matches contact by
// case-insensitive substring; callers needing exact matches re-filter with
// the aggregation package.
func (c *Client) GetCommitments(ctx context.Context, filter entities.CommitmentFilter) ([]entities.Commitment, error) {
	q := url.Values{}
	if filter.Status != "" && filter.Status != entities.StatusFilterAll {
		q.Set("status", filter.Status)
	}
	if filter.Contact != "" {
		q.Set("contact", filter.Contact)
	}
	var dtos []commitmentDTO
	if err := c.call(ctx, "list commitments", http.MethodGet, "/api/commitments", q, nil, &dtos); err != nil {
		return nil, err
	}
	commitments := make([]entities.Commitment, 0, len(dtos))
	for _, d := range dtos {
		commitments = append(commitments, d.toEntity())
	}
	return commitments, nil
}

// UpdateCommitment patches status and/or due date
func (c *Client) UpdateCommitment(ctx context.Context, id string, update entities.CommitmentUpdate) (*entities.Commitment, error) {
	if id == "" {
		return nil, errors.ErrInvalidArgument("commitment id is required")
	}
	var dto commitmentDTO
	err := c.call(ctx, "update commitment", http.MethodPatch, "/api/commitments/"+url.PathEscape(id), nil, update, &dto)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrCommitmentNotFound(id)
		}
		return nil, errors.ErrCommitmentUpdateFailed(id, err)
	}
	cm := dto.toEntity()
	return &cm, nil
}

// SearchMemories runs a relevance search, optionally scoped to a contact
func (c *Client) SearchMemories(ctx context.Context, query, contact string) ([]entities.SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	if contact != "" {
		q.Set("contact", contact)
	}
	var dtos []searchResultDTO
	if err := c.call(ctx, "search memories", http.MethodGet, "/api/search", q, nil, &dtos); err != nil {
		return nil, errors.ErrSearchFailed(err)
	}
	results := make([]entities.SearchResult, 0, len(dtos))
	for _, d := range dtos {
		results = append(results, d.toEntity())
	}
	return results, nil
}

// OpenBriefingStream opens the SSE briefing stream for contact. The caller
// owns the returned subscription and must Close it.
func (c *Client) OpenBriefingStream(ctx context.Context, contact string) (repositories.Subscription, error) {
	if contact == "" {
		return nil, errors.ErrInvalidArgument("contact is required")
	}

	endpoint := c.baseURL + "/api/briefings/" + url.PathEscape(contact)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.ErrBriefingStreamFailed(contact, err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, errors.ErrBriefingStreamFailed(contact, errors.ErrBackendUnavailable("open briefing stream", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, errors.ErrBriefingStreamFailed(contact, statusError("open briefing stream", resp))
	}

	c.logger.Info("📡 Briefing stream opened", zap.String("contact", contact))
	return newStreamSubscription(resp.Body), nil
}

// Health checks that the backend answers
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, "health", http.MethodGet, "/health", nil, nil, nil)
}

// call performs one API request. GETs are retried with exponential backoff
// while the failure is transient; everything else is attempted once.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	attempt := func() error {
		return c.do(ctx, op, method, path, query, body, out)
	}
	if method != http.MethodGet {
		return attempt()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 0

	tries := 0
	err := backoff.Retry(func() error {
		tries++
		err := attempt()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn("⚠️ Backend call failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", tries),
			zap.Error(err),
		)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.ErrInternal(fmt.Errorf("failed to encode %s request: %w", op, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.ErrInternal(fmt.Errorf("failed to build %s request: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.ErrBackendUnavailable(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.ErrBackendMalformed(op, err)
	}
	return nil
}

// statusError maps a non-2xx response onto the application error taxonomy
func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	detail := describeError(raw)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.ErrNotFound(op).WithDetail("backend", detail)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return errors.ErrBackendUnavailable(op, fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	default:
		return errors.ErrBackendRejected(op, resp.StatusCode, detail)
	}
}

// retryable reports whether another attempt could succeed
func retryable(err error) bool {
	if stdErrors.Is(err, context.Canceled) {
		return false
	}
	return errors.IsCode(err, errors.ErrorCode_BACKEND_UNAVAILABLE)
}
