package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Option configures a Client
type Option func(*Client) error

// BaseURL is a Client's option to set the baseURL of the REST client.
func BaseURL(URL *url.URL) Option {
	return func(c *Client) error {
		c.baseURL = URL
		return nil
	}
}

// Connect sets the base URL from a host[:port] string as given on the
// command line. A missing scheme defaults to http, a missing port to
// DefaultPort.
func Connect(hostPort string) Option {
	return func(c *Client) error {
		if !strings.Contains(hostPort, "://") {
			hostPort = "http://" + hostPort
		}
		u, err := url.Parse(hostPort)
		if err != nil {
			return fmt.Errorf("invalid server address %q: %w", hostPort, err)
		}
		if u.Port() == "" {
			u.Host = fmt.Sprintf("%s:%d", u.Hostname(), DefaultPort)
		}
		c.baseURL = u
		return nil
	}
}

// HTTPClient is a Client's option to set a specific http.Client.
func HTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// Log is a client's option to set a Logger
func Log(logger interface{}) Option {
	return func(c *Client) error {
		switch logger.(type) {
		case Logger, TestLogger, LeveledLogger, nil:
			c.log = logger
		default:
			return errors.New("invalid logger type, expected Logger or LeveledLogger")
		}
		return nil
	}
}
