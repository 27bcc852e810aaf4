package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const baseURL = "https://connectapi.garmin.com"

// dateFormat is the date layout Garmin's wellness endpoints expect
const dateFormat = "2006-01-02"

// Client talks to the Garmin Connect API using a bearer token
type Client struct {
	token      string
	httpClient *http.Client
}

// NewClient builds a Garmin client with the given API token
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetDailySummary fetches step counts and intensity minutes for a date
func (c *Client) GetDailySummary(ctx context.Context, date time.Time) (*DailySummary, error) {
	path := "/usersummary-service/usersummary/daily"
	params := url.Values{}
	params.Set("calendarDate", date.Format(dateFormat))

	var summary DailySummary
	if err := c.getJSON(ctx, path, params, &summary); err != nil {
		return nil, fmt.Errorf("daily summary for %s: %w", date.Format(dateFormat), err)
	}
	return &summary, nil
}

// GetSleep fetches the sleep summary for a date
func (c *Client) GetSleep(ctx context.Context, date time.Time) (*SleepData, error) {
	path := "/wellness-service/wellness/dailySleepData"
	params := url.Values{}
	params.Set("date", date.Format(dateFormat))

	var sleep SleepData
	if err := c.getJSON(ctx, path, params, &sleep); err != nil {
		return nil, fmt.Errorf("sleep data for %s: %w", date.Format(dateFormat), err)
	}
	return &sleep, nil
}

// GetHeartRates fetches resting heart rate and related values for a date
func (c *Client) GetHeartRates(ctx context.Context, date time.Time) (*HeartRates, error) {
	path := "/wellness-service/wellness/dailyHeartRate"
	params := url.Values{}
	params.Set("date", date.Format(dateFormat))

	var hr HeartRates
	if err := c.getJSON(ctx, path, params, &hr); err != nil {
		return nil, fmt.Errorf("heart rates for %s: %w", date.Format(dateFormat), err)
	}
	return &hr, nil
}

// GetStress fetches the average stress level for a date
func (c *Client) GetStress(ctx context.Context, date time.Time) (*StressData, error) {
	path := "/wellness-service/wellness/dailyStress"
	params := url.Values{}
	params.Set("date", date.Format(dateFormat))

	var stress StressData
	if err := c.getJSON(ctx, path, params, &stress); err != nil {
		return nil, fmt.Errorf("stress data for %s: %w", date.Format(dateFormat), err)
	}
	return &stress, nil
}

// GetBodyComposition fetches weight data for a date. Garmin reports
// weight in grams.
func (c *Client) GetBodyComposition(ctx context.Context, date time.Time) (*BodyComposition, error) {
	path := "/weight-service/weight/dayview/" + date.Format(dateFormat)

	var body BodyComposition
	if err := c.getJSON(ctx, path, nil, &body); err != nil {
		return nil, fmt.Errorf("body composition for %s: %w", date.Format(dateFormat), err)
	}
	return &body, nil
}

// ListActivities fetches activities between two dates inclusive
func (c *Client) ListActivities(ctx context.Context, start, end time.Time) ([]ActivityItem, error) {
	path := "/activitylist-service/activities/search/activities"
	params := url.Values{}
	params.Set("startDate", start.Format(dateFormat))
	params.Set("endDate", end.Format(dateFormat))

	var activities []ActivityItem
	if err := c.getJSON(ctx, path, params, &activities); err != nil {
		return nil, fmt.Errorf("activities %s to %s: %w",
			start.Format(dateFormat), end.Format(dateFormat), err)
	}
	return activities, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("garmin API error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
