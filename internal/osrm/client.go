package osrm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

var ErrRouteFailed = errors.New("failed to fetch route")

// DefaultBaseURL is the public OSRM routing service.
const DefaultBaseURL = "https://router.project-osrm.org/route/v1"

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client is an interface for bike route lookups.
type Client interface {
	Route(ctx context.Context, start, end Point) ([]byte, error)
}

// HTTPClient implements Client against a real OSRM endpoint.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Route fetches a bike route between two points and returns the
// upstream JSON body untouched. OSRM wants lng,lat pairs in the path.
func (c *HTTPClient) Route(ctx context.Context, start, end Point) ([]byte, error) {
	url := fmt.Sprintf("%s/bike/%s,%s;%s,%s?overview=full&geometries=geojson",
		c.baseURL,
		coord(start.Lng), coord(start.Lat),
		coord(end.Lng), coord(end.Lat),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRouteFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}

	return body, nil
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
