package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent resty client bound to baseURL with
// the given per-request timeout. A baseURL without a scheme is treated as
// plain HTTP and a trailing slash is dropped.
//
// Example usage:
//
//	client := utils.NewHTTPClient("localhost:3333", 15*time.Second)
//	resp, err := client.R().Get("/transactions")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(NormalizeBaseURL(baseURL)).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}

// NormalizeBaseURL prepends "http://" when address has no scheme and trims
// trailing slashes.
func NormalizeBaseURL(address string) string {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return strings.TrimRight(address, "/")
}
