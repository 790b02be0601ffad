package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AggregateType names the entity an outbox event belongs to.
type AggregateType string

// EventType names what happened to the aggregate.
type EventType string

const (
	AggregatePlay AggregateType = "play"
	AggregateGoal AggregateType = "goal"

	EventPlayProcessed EventType = "processed"
	EventGoalCompleted EventType = "completed"
)

// OutboxDraft is an event staged in the transactional outbox, written in the
// same transaction as the state change it describes.
type OutboxDraft struct {
	SeqID         int64           `json:"-"`
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewPlayProcessedEvent creates the event emitted for every newly classified
// play.
func NewPlayProcessedEvent(rec PlayRecord) OutboxDraft {
	payload, _ := json.Marshal(rec)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlay,
		AggregateID:   rec.ID.String(),
		EventType:     EventPlayProcessed,
		PartitionKey:  strconv.FormatInt(rec.UserID, 10),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewGoalCompletedEvent creates the event emitted when a goal first reaches
// its target.
func NewGoalCompletedEvent(userID int64, update GoalProgressUpdate) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"goal_id":      update.GoalID.String(),
		"user_id":      userID,
		"progress":     update.Progress,
		"completed_at": update.CompletedAt,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateGoal,
		AggregateID:   update.GoalID.String(),
		EventType:     EventGoalCompleted,
		PartitionKey:  strconv.FormatInt(userID, 10),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
