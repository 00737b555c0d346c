package customHttpClient

import (
	"net/http"

	"github.com/akolanti/DoodleAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// GetPooledClient is shared by the LLM SDK clients so repeated completion and
// image calls reuse connections.
func GetPooledClient() *http.Client {
	return &http.Client{
		Transport: customTransport,
	}
}
