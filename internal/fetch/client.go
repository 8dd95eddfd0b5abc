package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"epiview/domain/series"
	"epiview/internal/errors"
)

// Client retrieves dataset snapshots from the remote data endpoints. One bare
// GET per call; no retry, no caching.
type Client struct {
	http *http.Client
}

// NewClient creates a dataset client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchRecords performs a single GET against url and decodes the body as a
// JSON array of CountryRecord. A transport failure or non-2xx status comes
// back as an AppError whose message is suitable for direct display.
func (c *Client) FetchRecords(ctx context.Context, url string) ([]series.CountryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building dataset request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.FetchFailed(fmt.Sprintf("could not reach the data service at %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.FetchFailed(
			fmt.Sprintf("data service returned %s for %s", resp.Status, url), nil)
	}

	var records []series.CountryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, errors.DecodeFailed("the data service response was not a valid dataset", err)
	}
	return records, nil
}
