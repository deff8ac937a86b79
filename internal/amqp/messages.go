package amqp

import (
	"encoding/json"
	"time"
)

// PlanEventMessage announces a change to the weekly plan. It carries the
// whole state a consumer needs, so the worker never has to read the plan
// store just to log an event.
type PlanEventMessage struct {
	Event          string    `json:"event"`
	WeekIdentifier string    `json:"weekIdentifier"`
	Amount         float64   `json:"amount"`
	CurrentBudget  float64   `json:"currentBudget"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewPlanEventMessage creates an event message stamped with the current time.
func NewPlanEventMessage(event, weekIdentifier string, amount, currentBudget float64) *PlanEventMessage {
	return &PlanEventMessage{
		Event:          event,
		WeekIdentifier: weekIdentifier,
		Amount:         amount,
		CurrentBudget:  currentBudget,
		Timestamp:      time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PlanEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PlanEventMessageFromJSON creates a message from JSON bytes
func PlanEventMessageFromJSON(data []byte) (*PlanEventMessage, error) {
	var msg PlanEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
