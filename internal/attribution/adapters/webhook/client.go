package webhook

import (
	"context"
	"net/http"
	"strings"
	"time"

	"attribution-relay/internal/attribution/core/domain"
	"attribution-relay/internal/attribution/core/ports"

	"github.com/carlmjohnson/requests"
	"github.com/m-mizutani/goerr/v2"
)

// PlaceholderURL is what ships in sample configs before a real hook is pasted in.
const PlaceholderURL = "YOUR_ZAPIER_WEBHOOK_URL_HERE"

type Client struct {
	url        string
	httpClient *http.Client
}

var _ ports.WebhookPort = (*Client)(nil)

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        strings.TrimSpace(url),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.url != "" && c.url != PlaceholderURL
}

func (c *Client) SendConversion(ctx context.Context, conv domain.SignupConversion) error {
	err := requests.
		URL(c.url).
		Client(c.httpClient).
		BodyJSON(&conv).
		Fetch(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to post conversion to webhook", goerr.V("event_type", conv.EventType))
	}
	return nil
}
