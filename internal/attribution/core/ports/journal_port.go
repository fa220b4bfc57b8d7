package ports

import (
	"context"

	"attribution-relay/internal/attribution/core/domain"
)

type JournalPort interface {
	// InsertEvent:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (idempotent)
	//   created = false, err != nil -> DB error
	InsertEvent(ctx context.Context, e *domain.JournalEntry) (created bool, err error)
}
