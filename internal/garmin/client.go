package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tvanier/garmin-coach/internal/model"
)

const defaultBaseURL = "https://connectapi.garmin.com"

// Credentials holds the Garmin Connect account credentials.
type Credentials struct {
	Email    string
	Password string
}

// Client talks to the Garmin Connect API. All calls are synchronous and
// blocking; any remote failure is returned to the caller unretried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	ssoURL     string
	creds      Credentials
	tokens     *tokenStore
	mfaPrompt  func() (string, error)
}

func New(creds Credentials, tokenDir string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		ssoURL:     defaultSSOURL,
		creds:      creds,
		tokens:     &tokenStore{dir: tokenDir},
	}
}

// SetMFAPrompt installs the interactive callback used when a login is
// answered with an MFA challenge. Without one, a challenge fails with
// ErrMFARequired.
func (c *Client) SetMFAPrompt(prompt func() (string, error)) {
	c.mfaPrompt = prompt
}

// Activity is a raw activity-list record as returned by the
// activitylist-service endpoint. Only the fields the pipeline reads are
// mapped.
type Activity struct {
	ActivityID     model.ID     `json:"activityId"`
	ActivityName   string       `json:"activityName"`
	ActivityType   ActivityType `json:"activityType"`
	StartTimeLocal string       `json:"startTimeLocal"`
	StartTimeGMT   string       `json:"startTimeGMT"`
	Distance       float64      `json:"distance"`
	Duration       float64      `json:"duration"`
	AverageHR      *float64     `json:"averageHR"`
	MaxHR          *float64     `json:"maxHR"`
	AverageSpeed   float64      `json:"averageSpeed"`
}

type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

// Lap is the raw lap DTO shared by the splits and details endpoints.
type Lap struct {
	LapIndex         int      `json:"lapIndex"`
	StartTimeGMT     string   `json:"startTimeGMT"`
	Distance         float64  `json:"distance"`
	Duration         float64  `json:"duration"`
	AverageSpeed     float64  `json:"averageSpeed"`
	AverageHeartRate *float64 `json:"averageHeartRate"`
}

type splitsResponse struct {
	LapSplits []Lap `json:"lapSplits"`
}

type detailsResponse struct {
	LapDTOs []Lap `json:"lapDTOs"`
}

// Activities returns one page of the account's activity list, newest first,
// starting at the given offset.
func (c *Client) Activities(ctx context.Context, start, limit int) ([]Activity, error) {
	url := fmt.Sprintf("%s/activitylist-service/activities/search/activities?start=%d&limit=%d",
		c.baseURL, start, limit)

	var activities []Activity
	if err := c.getJSON(ctx, url, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// ActivitySplits returns the dedicated lap list for an activity. The list
// may be empty; treadmill runs in particular often have no split data.
func (c *Client) ActivitySplits(ctx context.Context, id model.ID) ([]Lap, error) {
	url := fmt.Sprintf("%s/activity-service/activity/%s/splits", c.baseURL, id)

	var resp splitsResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.LapSplits, nil
}

// ActivityDetails returns the laps embedded in the full activity detail.
func (c *Client) ActivityDetails(ctx context.Context, id model.ID) ([]Lap, error) {
	url := fmt.Sprintf("%s/activity-service/activity/%s/details", c.baseURL, id)

	var resp detailsResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.LapDTOs, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("garmin: build request: %w", err)
	}
	if tok := c.tokens.current(); tok != nil {
		tok.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("garmin: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("garmin: decode response from %s: %w", url, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (HTTP %d): session may have expired", ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("garmin: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
}
