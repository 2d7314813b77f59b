package storage

import (
	"context"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/message"
	"printmitra-be/internal/order"

	"go.uber.org/zap"
)

// Cleaner removes every bucket object tied to an order, both the order's own
// uploads and chat attachments, then strips the stored file lists. It runs
// after completion or soft deletion, so a failure here must never undo the
// order change: callers log and move on, and the objects can be swept again
// later because the keys stay in the database until removal succeeds.
type Cleaner struct {
	orders   order.Repository
	messages message.Repository
	store    ObjectStore
}

func NewCleaner(orders order.Repository, messages message.Repository, store ObjectStore) *Cleaner {
	return &Cleaner{orders: orders, messages: messages, store: store}
}

func (c *Cleaner) CleanupOrder(ctx context.Context, orderID int64) error {
	log := logger.FromCtx(ctx)

	o, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	msgs, err := c.messages.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	var keys []string
	for _, f := range o.Files {
		keys = append(keys, f.Key)
	}
	for _, m := range msgs {
		for _, f := range m.Files {
			keys = append(keys, f.Key)
		}
	}

	if len(keys) > 0 {
		if err := c.store.RemoveFiles(keys); err != nil {
			return err
		}
	}

	if err := c.orders.ClearFiles(ctx, orderID); err != nil {
		return err
	}
	if err := c.messages.ClearFiles(ctx, orderID); err != nil {
		return err
	}

	log.Info("order files cleaned",
		zap.Int64("orderID", orderID),
		zap.Int("objects", len(keys)))
	return nil
}
