package repository

import (
	"context"
	"fmt"

	"github.com/scoreline/tracker/internal/domain"
)

type outboxRepo struct{}

// NewOutboxRepository returns a pgx-backed OutboxRepository.
func NewOutboxRepository() OutboxRepository {
	return &outboxRepo{}
}

func (r *outboxRepo) Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error {
	_, err := db.Exec(ctx, `
		INSERT INTO event_outbox (event_id, aggregate_type, aggregate_id,
			event_type, partition_key, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		draft.EventID, string(draft.AggregateType), draft.AggregateID,
		string(draft.EventType), draft.PartitionKey, draft.Payload, draft.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepo) FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error) {
	rows, err := db.Query(ctx, `
		SELECT seq_id, event_id, aggregate_type, aggregate_id,
		       event_type, partition_key, payload, occurred_at
		FROM event_outbox
		WHERE published_at IS NULL
		ORDER BY seq_id ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished events: %w", err)
	}
	defer rows.Close()

	var drafts []domain.OutboxDraft
	for rows.Next() {
		var d domain.OutboxDraft
		var aggType, evType string
		err := rows.Scan(&d.SeqID, &d.EventID, &aggType, &d.AggregateID,
			&evType, &d.PartitionKey, &d.Payload, &d.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		d.AggregateType = domain.AggregateType(aggType)
		d.EventType = domain.EventType(evType)
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (r *outboxRepo) MarkPublished(ctx context.Context, db DBTX, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.Exec(ctx, `
		UPDATE event_outbox SET published_at = now() WHERE seq_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("mark events published: %w", err)
	}
	return nil
}
