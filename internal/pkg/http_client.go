package pkg

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns the client used for Telegram calls. timeout bounds a
// whole exchange, body included.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = 10 * time.Second
	transport.ResponseHeaderTimeout = timeout
	transport.MaxIdleConnsPerHost = 10

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
