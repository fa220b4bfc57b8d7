package postgres

import (
	"context"
	"encoding/json"

	"attribution-relay/internal/attribution/core/domain"
	"attribution-relay/internal/attribution/core/ports"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
)

type JournalRepository struct {
	db DB
}

func NewJournalRepository(db DB) *JournalRepository {
	return &JournalRepository{db: db}
}

var _ ports.JournalPort = (*JournalRepository)(nil)

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS attribution_events (
    id                   BIGSERIAL PRIMARY KEY,
    event_name           TEXT        NOT NULL,
    channel              TEXT        NOT NULL,
    visitor_id           TEXT,
    first_touch_source   TEXT,
    first_touch_medium   TEXT,
    first_touch_campaign TEXT,
    page_path            TEXT        NOT NULL DEFAULT '',
    event_time           TIMESTAMPTZ NOT NULL,
    tags                 TEXT[]      NOT NULL DEFAULT '{}',
    params               JSONB       NOT NULL DEFAULT '{}',
    dedupe_key           TEXT        NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS attribution_events_name_time_idx
    ON attribution_events (event_name, event_time);
`

// SQL template
const insertEventSQL = `
INSERT INTO attribution_events (
    event_name,
    channel,
    visitor_id,
    first_touch_source,
    first_touch_medium,
    first_touch_campaign,
    page_path,
    event_time,
    tags,
    params,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

// EnsureSchema creates the journal table when it does not exist yet.
func (r *JournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSchemaSQL); err != nil {
		return goerr.Wrap(err, "failed to create attribution_events schema")
	}
	return nil
}

func (r *JournalRepository) InsertEvent(ctx context.Context, e *domain.JournalEntry) (bool, error) {
	params := e.Params
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return false, err
	}

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}

	res, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventName,
		e.Channel,
		nullable(e.VisitorID),
		nullable(e.FirstTouchSource),
		nullable(e.FirstTouchMedium),
		nullable(e.FirstTouchCampaign),
		e.PagePath,
		e.EventTime,
		pq.Array(tags),
		paramsJSON,
		e.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
