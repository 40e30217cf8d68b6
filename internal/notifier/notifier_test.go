package notifier

import (
	"context"
	"errors"
	"testing"

	"hwbot/internal/transport"
	"hwbot/pkg/logx"
)

type fakeAdapter struct {
	sent []string
	err  error
}

func (f *fakeAdapter) SendText(ctx context.Context, to transport.ChatTarget, text string, opt *transport.SendOptions) (transport.MessageRef, error) {
	if f.err != nil {
		return transport.MessageRef{}, f.err
	}
	f.sent = append(f.sent, text)
	return transport.MessageRef{ChatID: to.ChatID, MessageID: len(f.sent)}, nil
}

func TestNotifyDelivers(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{}
	s := New(Config{RatePerSec: 100}, adapter, transport.ChatTarget{ChatID: 42}, logx.Nop())

	if !s.Notify(context.Background(), "hello") {
		t.Fatal("Notify = false, want true")
	}
	if len(adapter.sent) != 1 || adapter.sent[0] != "hello" {
		t.Fatalf("sent = %q, want [hello]", adapter.sent)
	}
}

func TestNotifyReportsFailureWithoutError(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{err: errors.New("chat not found")}
	s := New(Config{RatePerSec: 100}, adapter, transport.ChatTarget{ChatID: 42}, logx.Nop())

	if s.Notify(context.Background(), "hello") {
		t.Fatal("Notify = true, want false on send failure")
	}
}
