package events

import (
	"context"
	"sync"
	"time"

	"github.com/BearBump/LlantaBox/internal/broker/messages"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Emitter публикует события заявок в фоне. Ошибки публикации только
// логируются. nil *Emitter ничего не делает.
type Emitter struct {
	pub     Publisher
	topic   string
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewEmitter(pub Publisher, topic string, timeout time.Duration, log *zap.Logger) *Emitter {
	if pub == nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Emitter{pub: pub, topic: topic, timeout: timeout, log: log}
}

func (e *Emitter) Emit(ctx context.Context, ev messages.SubmissionEvent) {
	if e == nil {
		return
	}
	value, err := ev.Encode()
	if err != nil {
		e.log.Error("encode submission event", zap.Error(err))
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
		defer cancel()
		if err := e.pub.Publish(pctx, e.topic, ev.Key(), value); err != nil {
			e.log.Warn("publish submission event", zap.String("kind", ev.Kind), zap.String("id", ev.ID), zap.Error(err))
		}
	}()
}

// Flush ждёт публикации, которые ещё в полёте.
func (e *Emitter) Flush() {
	if e == nil {
		return
	}
	e.wg.Wait()
}
