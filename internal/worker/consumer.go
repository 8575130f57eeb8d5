package worker

import (
	"context"
	"encoding/json"

	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/provider"
	"github.com/cantina-pos/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued POS tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskTicketRender, c.handleTicketRender)
	mux.HandleFunc(queue.TaskStaleOrderCancel, c.handleStaleOrderCancel)
}

func (c *Consumer) handleTicketRender(_ context.Context, task *asynq.Task) error {
	var payload queue.TicketRenderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_ticket_render_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_ticket_render_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_ticket_render_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_ticket_render_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if c.TicketGenerator == nil {
		logger.Warnw("worker_ticket_render_skip_generator_nil", "order_id", order.ID)
		return nil
	}
	path, err := c.TicketGenerator.Generate(order)
	if err != nil {
		logger.Errorw("worker_ticket_render_failed", "order_id", order.ID, "error", err)
		return err
	}
	if err := c.OrderService.MarkPrinted(order.ID); err != nil {
		logger.Warnw("worker_ticket_mark_printed_failed", "order_id", order.ID, "error", err)
		return err
	}
	logger.Infow("worker_ticket_rendered", "order_id", order.ID, "ticket_number", order.TicketNumber, "path", path)
	return nil
}

func (c *Consumer) handleStaleOrderCancel(_ context.Context, task *asynq.Task) error {
	var payload queue.StaleOrderCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stale_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_stale_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.CancelIfStale(payload.OrderID); err != nil {
		logger.Warnw("worker_stale_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
