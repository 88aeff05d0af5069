package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/marketplace/internal/adapter/mail"
	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/worker"
)

// TaskSubmitter hands background work to a worker pool.
type TaskSubmitter interface {
	Submit(task worker.Task) bool
}

// Dispatcher fans order lifecycle events out to the seller's live channel and,
// for new orders, to the buyer's inbox.
type Dispatcher struct {
	registry *Registry
	users    repository.UserRepository
	mailer   mail.Sender
	tasks    TaskSubmitter
	logger   *slog.Logger
	now      func() time.Time
}

// NewDispatcher constructs dispatcher.
func NewDispatcher(registry *Registry, users repository.UserRepository, mailer mail.Sender, tasks TaskSubmitter, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		users:    users,
		mailer:   mailer,
		tasks:    tasks,
		logger:   logger,
		now:      time.Now,
	}
}

// Dispatch publishes kind for order. It never fails: an offline seller or a
// rejected email task is logged and ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, kind model.EventKind, order model.Order) {
	d.push(ctx, kind, order)

	if kind == model.EventCreated {
		d.enqueueConfirmation(order)
	}
}

func (d *Dispatcher) push(ctx context.Context, kind model.EventKind, order model.Order) {
	event := kind.EventName()
	conn, ok := d.registry.Lookup(order.SellerID)
	if !ok {
		d.logger.Debug("seller not connected", slog.String("seller", order.SellerID), slog.String("event", event))
		return
	}

	if err := conn.Send(event, order); err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrConnClosed) {
			d.registry.Drop(conn)
			level = slog.LevelDebug
		}
		d.logger.Log(ctx, level, "push event failed",
			slog.String("seller", order.SellerID),
			slog.String("event", event),
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Debug("event pushed", slog.String("seller", order.SellerID), slog.String("event", event), slog.String("order", order.ID))
}

func (d *Dispatcher) enqueueConfirmation(order model.Order) {
	d.tasks.Submit(worker.Task{
		Name: "order-confirmation:" + order.ID,
		Run: func(ctx context.Context) error {
			return d.sendConfirmation(ctx, order)
		},
	})
}

func (d *Dispatcher) sendConfirmation(ctx context.Context, order model.Order) error {
	buyer, err := d.users.GetByID(ctx, order.BuyerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			d.logger.Warn("buyer not found, confirmation skipped", slog.String("order", order.ID))
			return nil
		}
		return fmt.Errorf("load buyer: %w", err)
	}
	if buyer.Email == "" {
		return nil
	}

	msg, err := mail.RenderConfirmation(buyer.Email, mail.NewConfirmation(buyer.Name, order, d.now()))
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, msg)
}
