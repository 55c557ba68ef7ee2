package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request made through HTTPClient.
const UserAgent = "tim-encrypted-storage"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Post("https://keys.example.com/keyservice/v1/createkey")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance.
//
// The client never retries and never follows redirects: a key service
// request is sent exactly once and its first response is final.
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetRetryCount(0).
		SetRedirectPolicy(resty.NoRedirectPolicy()).
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}
