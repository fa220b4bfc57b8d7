package ga4

import (
	"context"
	"net/http"
	"time"

	"attribution-relay/internal/attribution/core/domain"
	"attribution-relay/internal/attribution/core/ports"

	"github.com/carlmjohnson/requests"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/sjson"
)

const DefaultEndpoint = "https://www.google-analytics.com"

// Client sends events through the GA4 Measurement Protocol.
type Client struct {
	endpoint      string
	measurementID string
	apiSecret     string
	httpClient    *http.Client
}

var _ ports.AnalyticsPort = (*Client)(nil)

func NewClient(endpoint, measurementID, apiSecret string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:      endpoint,
		measurementID: measurementID,
		apiSecret:     apiSecret,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.measurementID != "" && c.apiSecret != ""
}

func (c *Client) SendEvent(ctx context.Context, e domain.AnalyticsEvent) error {
	body, err := buildBody(e)
	if err != nil {
		return err
	}

	err = requests.
		URL(c.endpoint).
		Client(c.httpClient).
		Path("/mp/collect").
		Param("measurement_id", c.measurementID).
		Param("api_secret", c.apiSecret).
		BodyBytes(body).
		ContentType("application/json").
		Fetch(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to send GA4 event", goerr.V("event", e.Name))
	}
	return nil
}

// buildBody renders {"client_id":..,"events":[{"name":..,"params":{..}}]}.
func buildBody(e domain.AnalyticsEvent) ([]byte, error) {
	body := []byte(`{}`)
	var err error

	body, err = sjson.SetBytes(body, "client_id", e.ClientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set client_id")
	}
	body, err = sjson.SetBytes(body, "events.0.name", e.Name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set event name")
	}

	params := e.Params
	if params == nil {
		params = map[string]any{}
	}
	body, err = sjson.SetBytes(body, "events.0.params", params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set event params", goerr.V("event", e.Name))
	}
	return body, nil
}
