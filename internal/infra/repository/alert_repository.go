package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

// Every key shares the {alerts} hash tag so the scripts, which derive record
// keys from ARGV, stay within one cluster slot.
const (
	alertKeyPrefix    = "{alerts}:key:"
	alertRecordPrefix = "{alerts}:record:"
	allAlertsKey      = "{alerts}:all"
	unreadAlertsKey   = "{alerts}:unread"
)

// upsertScript maps an alert key to a record id exactly once. The indexes are
// sorted sets scored by creation time in milliseconds.
//
// KEYS: key mapping, all index, unread index
// ARGV: new id, record prefix, encoded record, created score
var upsertScript = redis.NewScript(`
local existing = redis.call('GET', KEYS[1])
if existing then
	return {0, existing, redis.call('GET', ARGV[2] .. existing)}
end
redis.call('SET', KEYS[1], ARGV[1])
redis.call('SET', ARGV[2] .. ARGV[1], ARGV[3])
redis.call('ZADD', KEYS[2], ARGV[4], ARGV[1])
redis.call('ZADD', KEYS[3], ARGV[4], ARGV[1])
return {1, ARGV[1], ARGV[3]}
`)

// KEYS: record, unread index
// ARGV: updated_at, id
var markReadScript = redis.NewScript(`
local data = redis.call('GET', KEYS[1])
if not data then
	return false
end
local rec = cjson.decode(data)
if rec.read then
	return data
end
rec.read = true
rec.updated_at = ARGV[1]
local out = cjson.encode(rec)
redis.call('SET', KEYS[1], out)
redis.call('ZREM', KEYS[2], ARGV[2])
return out
`)

// KEYS: unread index
// ARGV: updated_at, record prefix
var markAllReadScript = redis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
local modified = 0
for _, id in ipairs(ids) do
	local key = ARGV[2] .. id
	local data = redis.call('GET', key)
	if data then
		local rec = cjson.decode(data)
		if not rec.read then
			rec.read = true
			rec.updated_at = ARGV[1]
			redis.call('SET', key, cjson.encode(rec))
			modified = modified + 1
		end
	end
end
redis.call('DEL', KEYS[1])
return modified
`)

type alertRecord struct {
	ID          string    `json:"id"`
	AlertKey    string    `json:"alert_key"`
	Category    string    `json:"category"`
	Message     string    `json:"message"`
	TargetRoute string    `json:"target_route"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r alertRecord) toDomain() *domain.Alert {
	return &domain.Alert{
		ID:          r.ID,
		AlertKey:    r.AlertKey,
		Category:    domain.Category(r.Category),
		Message:     r.Message,
		TargetRoute: r.TargetRoute,
		Read:        r.Read,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type alertRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewAlertRepository(client *redis.Client) domain.AlertRepository {
	return &alertRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *alertRepository) UpsertByKey(ctx context.Context, draft domain.AlertDraft) (*domain.UpsertResult, error) {
	if draft.AlertKey == "" || !draft.Category.Valid() {
		return nil, ErrInvalidAlertData
	}

	now := r.now().UTC()
	record := alertRecord{
		ID:          uuid.NewString(),
		AlertKey:    draft.AlertKey,
		Category:    draft.Category.String(),
		Message:     draft.Message,
		TargetRoute: draft.TargetRoute,
		Read:        false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, ErrInvalidAlertData
	}

	reply, err := upsertScript.Run(ctx, r.client,
		[]string{alertKeyPrefix + draft.AlertKey, allAlertsKey, unreadAlertsKey},
		record.ID, alertRecordPrefix, data, now.UnixMilli(),
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("upsert alert %s: %w", draft.AlertKey, err)
	}

	if len(reply) != 3 {
		return nil, ErrUnexpectedReply
	}

	inserted, ok := reply[0].(int64)
	if !ok {
		return nil, ErrUnexpectedReply
	}

	payload, ok := reply[2].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrMissingAlertRecord, reply[1])
	}

	alert, err := decodeAlert([]byte(payload))
	if err != nil {
		return nil, err
	}

	return &domain.UpsertResult{Alert: alert, Inserted: inserted == 1}, nil
}

func (r *alertRepository) ListUnread(ctx context.Context) ([]*domain.Alert, error) {
	return r.listIndex(ctx, unreadAlertsKey)
}

func (r *alertRepository) ListAll(ctx context.Context) ([]*domain.Alert, error) {
	return r.listIndex(ctx, allAlertsKey)
}

// listIndex returns the indexed alerts most recent first.
func (r *alertRepository) listIndex(ctx context.Context, index string) ([]*domain.Alert, error) {
	ids, err := r.client.ZRevRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Alert{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = alertRecordPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	alerts := make([]*domain.Alert, 0, len(values))
	for _, v := range values {
		payload, ok := v.(string)
		if !ok {
			continue
		}
		alert, err := decodeAlert([]byte(payload))
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	data, err := r.client.Get(ctx, alertRecordPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}

	return decodeAlert(data)
}

func (r *alertRepository) MarkRead(ctx context.Context, id string) (*domain.Alert, error) {
	updatedAt := r.now().UTC().Format(time.RFC3339Nano)

	payload, err := markReadScript.Run(ctx, r.client,
		[]string{alertRecordPrefix + id, unreadAlertsKey},
		updatedAt, id,
	).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}

	return decodeAlert([]byte(payload))
}

func (r *alertRepository) MarkAllRead(ctx context.Context) (int, error) {
	updatedAt := r.now().UTC().Format(time.RFC3339Nano)

	modified, err := markAllReadScript.Run(ctx, r.client,
		[]string{unreadAlertsKey},
		updatedAt, alertRecordPrefix,
	).Int()
	if err != nil {
		return 0, err
	}

	return modified, nil
}

func decodeAlert(data []byte) (*domain.Alert, error) {
	var record alertRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlertData, err)
	}
	return record.toDomain(), nil
}
