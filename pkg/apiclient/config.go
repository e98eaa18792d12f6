package apiclient

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
)

// Config holds construction settings shared by every API client.
type Config struct {
	// BaseURL is the root URL of the API, e.g. "https://api.marketplace.gov".
	BaseURL string

	// AuthToken is forwarded as a bearer credential on every request.
	// Leave empty for APIs that take no authentication.
	AuthToken string

	// Timeout for each request. Default: 30 seconds.
	Timeout time.Duration

	// Logger (optional).
	Logger hclog.Logger
}

// Validate checks the configuration before a client is built.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
	)
}

// newHTTPClient builds the transport used for all calls.
func (c Config) newHTTPClient() *http.Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
