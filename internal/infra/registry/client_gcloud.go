//go:build gcloud

package registry

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
)

// newHTTPClient authenticates registry calls with an ID token for baseURL.
func newHTTPClient(baseURL string) *http.Client {
	httpClient, err := idtoken.NewClient(context.Background(), baseURL)
	if err != nil {
		slog.Error("failed to create idtoken client, falling back to unauthenticated client",
			slog.String("error", err.Error()),
		)
		return &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	httpClient.Timeout = 30 * time.Second
	return httpClient
}
