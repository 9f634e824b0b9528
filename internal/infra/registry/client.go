package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/logging"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/tracing"
)

const equipmentPath = "/api/v1/equipment"

// Client reads equipment from the registry service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

var _ domain.EquipmentSource = (*Client)(nil)

func (c *Client) ListWithDueDate(ctx context.Context) ([]domain.Equipment, error) {
	q := url.Values{}
	q.Set("has_due_date", "true")
	return c.fetch(ctx, "list_with_due_date", q)
}

func (c *Client) GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error) {
	if len(ids) == 0 {
		return []domain.Equipment{}, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	return c.fetch(ctx, "get_by_ids", q)
}

func (c *Client) fetch(ctx context.Context, operation string, q url.Values) ([]domain.Equipment, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = equipmentPath
	u.RawQuery = q.Encode()

	ctx, span := tracing.StartExternalAPISpan(ctx, operation, u.String())
	defer span.End()

	slog.DebugContext(ctx, "fetching equipment from registry",
		slog.String("operation", operation),
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set(logging.RequestIDHeader, requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordError(span, err)
		slog.ErrorContext(ctx, "failed to send request to registry",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordError(span, err)
		slog.ErrorContext(ctx, "unexpected status code from registry",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var listResp EquipmentListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	slog.DebugContext(ctx, "fetched equipment from registry",
		slog.String("operation", operation),
		slog.Int("count", len(listResp.Equipment)),
	)

	return toDomainEquipment(listResp.Equipment), nil
}

func toDomainEquipment(items []EquipmentResponse) []domain.Equipment {
	out := make([]domain.Equipment, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Equipment{
			ID:              item.ID,
			Serial:          item.Serial,
			Brand:           item.Brand,
			Model:           item.Model,
			Area:            item.Area,
			Provider:        item.Provider,
			NextMaintenance: item.NextMaintenance,
			LastMaintenance: item.LastMaintenance,
		})
	}
	return out
}
