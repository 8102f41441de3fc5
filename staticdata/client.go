// Package staticdata is a client for the static course data service, which
// publishes one JSON document per course.
package staticdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/osuc/buscaramos/logger"
	"github.com/osuc/buscaramos/requisites"
)

var (
	ErrNotFound        = errors.New("course not found")
	ErrInvalidResponse = errors.New("invalid static data response")
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
)

type Course struct {
	Sigle        string
	Name         string
	Credits      int
	School       string
	Area         []string
	Categories   []string
	Format       []string
	Campus       []string
	Description  string
	LastSemester string

	HasPrerequisites bool
	HasRestrictions  bool
	HasEquivalences  bool
	UnlocksCourses   bool
	Prerequisites    *requisites.Group[requisites.CourseRef]
	Connector        string
	Equivalences     []string
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	// Timeout bounds each attempt.
	Timeout time.Duration
	Retries int
	// Backoff is the wait before retry number attempt+1.
	Backoff func(attempt int) time.Duration
}

func NewClient(baseURL string, timeout time.Duration, retries int) *Client {
	return &Client{
		HTTP:    &http.Client{},
		BaseURL: baseURL,
		Timeout: timeout,
		Retries: retries,
		Backoff: linearBackoff,
	}
}

func linearBackoff(attempt int) time.Duration {
	return time.Second * time.Duration(attempt+1)
}

// retryable marks failures worth another attempt.
type retryable struct {
	err error
}

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Course fetches the static data of one course. It returns ErrNotFound when
// the service does not know the sigle.
func (c *Client) Course(ctx context.Context, sigle string) (*Course, error) {
	endpoint, err := url.JoinPath(c.BaseURL, "data", sigle)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		course, err := c.attempt(ctx, endpoint)
		if err == nil {
			return course, nil
		}

		var retry retryable
		if !errors.As(err, &retry) || ctx.Err() != nil {
			return nil, fmt.Errorf("course %v: %w", sigle, err)
		}
		lastErr = err

		if attempt < c.Retries {
			logger.Warn().
				Err(err).
				Str("sigle", sigle).
				Int("attempt", attempt+1).
				Int("attempts", c.Retries+1).
				Msg("Static data request failed, retrying")
		}
	}

	return nil, fmt.Errorf("course %v after %d attempts: %w", sigle, c.Retries+1, lastErr)
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	backoff := c.Backoff
	if backoff == nil {
		backoff = linearBackoff
	}

	timer := time.NewTimer(backoff(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) attempt(ctx context.Context, endpoint string) (*Course, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, retryable{err}
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case response.StatusCode >= http.StatusInternalServerError:
		return nil, retryable{fmt.Errorf("unexpected status %v", response.Status)}
	case response.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %v", response.Status)
	}

	var data wireCourseData
	if err := json.NewDecoder(response.Body).Decode(&data); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, retryable{err}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if data.Sigle == "" || data.Name == "" {
		return nil, fmt.Errorf("%w: missing sigle or name", ErrInvalidResponse)
	}

	return data.toCourse(), nil
}

// ResolveName returns the course name, or "" when the course is unknown.
func (c *Client) ResolveName(ctx context.Context, sigle string) (string, error) {
	course, err := c.Course(ctx, sigle)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return course.Name, nil
}
