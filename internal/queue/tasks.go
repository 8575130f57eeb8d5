package queue

import (
	"encoding/json"

	"github.com/cantina-pos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskTicketRender renders the printable ticket for an order.
	TaskTicketRender = constants.TaskTicketRender
	// TaskStaleOrderCancel cancels an open order left unattended too long.
	TaskStaleOrderCancel = constants.TaskStaleOrderCancel
)

// TicketRenderPayload identifies the order whose ticket should be rendered.
type TicketRenderPayload struct {
	OrderID uint `json:"order_id"`
}

// StaleOrderCancelPayload identifies the order to cancel if still open.
type StaleOrderCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewTicketRenderTask creates a ticket render task.
func NewTicketRenderTask(payload TicketRenderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTicketRender, body), nil
}

// NewStaleOrderCancelTask creates a stale order cancel task.
func NewStaleOrderCancelTask(payload StaleOrderCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStaleOrderCancel, body), nil
}
