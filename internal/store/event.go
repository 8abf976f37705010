package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"testnetdir.app/pulse/core/db"
	"testnetdir.app/pulse/internal/model"
)

type eventStore struct {
	db db.DBTX
}

func newEventStore(db db.DBTX) EventStore {
	return &eventStore{db: db}
}

func (s *eventStore) ListByKindsSince(ctx context.Context, kinds []string, since time.Time) ([]model.InteractionEvent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT event_name, payload, occurred_at
		FROM interaction_events
		WHERE event_name = ANY($1) AND occurred_at >= $2
		ORDER BY occurred_at`,
		kinds, since)
	if err != nil {
		return nil, fmt.Errorf("querying interaction events: %w", err)
	}
	defer rows.Close()

	var events []model.InteractionEvent
	for rows.Next() {
		var (
			event   model.InteractionEvent
			rawJSON []byte
		)
		if err := rows.Scan(&event.EventName, &rawJSON, &event.OccurredAt); err != nil {
			return nil, fmt.Errorf("scanning interaction event: %w", err)
		}
		if len(rawJSON) > 0 {
			if err := json.Unmarshal(rawJSON, &event.Payload); err != nil {
				// Collectors occasionally write garbage; a bad payload is a
				// validation failure for that event, not for the query.
				event.Payload = nil
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interaction events: %w", err)
	}
	return events, nil
}
