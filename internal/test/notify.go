package test

import (
	"context"
	"sync"

	"github.com/polkiloo/marketplace/internal/adapter/mail"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/worker"
)

// SentEvent is an event received by ConnStub.
type SentEvent struct {
	Name    string
	Payload any
}

// ConnStub records pushed events. Err is returned from every Send.
type ConnStub struct {
	mu     sync.Mutex
	Events []SentEvent
	Err    error
}

// Send records event unless Err is set.
func (c *ConnStub) Send(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Events = append(c.Events, SentEvent{Name: event, Payload: payload})
	return nil
}

// Sent returns a copy of recorded events.
func (c *ConnStub) Sent() []SentEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SentEvent(nil), c.Events...)
}

// MailSenderStub records delivered messages.
type MailSenderStub struct {
	mu       sync.Mutex
	Messages []mail.Message
	SendFn   func(context.Context, mail.Message) error
}

// Send records msg or delegates to SendFn.
func (s *MailSenderStub) Send(ctx context.Context, msg mail.Message) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, msg); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return nil
}

// Sent returns a copy of delivered messages.
func (s *MailSenderStub) Sent() []mail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mail.Message(nil), s.Messages...)
}

// TaskSubmitterStub collects submitted tasks so tests decide when to run them.
type TaskSubmitterStub struct {
	mu     sync.Mutex
	Tasks  []worker.Task
	Reject bool
}

// Submit stores task unless Reject is set.
func (s *TaskSubmitterStub) Submit(task worker.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Reject {
		return false
	}
	s.Tasks = append(s.Tasks, task)
	return true
}

// RunAll executes queued tasks in order and returns their errors.
func (s *TaskSubmitterStub) RunAll(ctx context.Context) []error {
	s.mu.Lock()
	tasks := s.Tasks
	s.Tasks = nil
	s.mu.Unlock()

	var errs []error
	for _, task := range tasks {
		if err := task.Run(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Pending returns the number of queued tasks.
func (s *TaskSubmitterStub) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Tasks)
}

// DispatchCall records a Dispatch invocation.
type DispatchCall struct {
	Kind  model.EventKind
	Order model.Order
}

// DispatcherStub records dispatched lifecycle events.
type DispatcherStub struct {
	mu    sync.Mutex
	Calls []DispatchCall
}

// Dispatch records the event.
func (d *DispatcherStub) Dispatch(ctx context.Context, kind model.EventKind, order model.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, DispatchCall{Kind: kind, Order: order})
}

// Recorded returns a copy of dispatched events.
func (d *DispatcherStub) Recorded() []DispatchCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DispatchCall(nil), d.Calls...)
}
