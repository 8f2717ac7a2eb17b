package events

import (
	"context"
	"time"

	"github.com/boardcamp/boardcamp-api/telemetry"

	"go.uber.org/zap"
)

// Dispatcher drains queued events to Kafka so handlers never block on the
// broker. Events failing schema validation or publication are dropped.
type Dispatcher struct {
	log       *zap.Logger
	producer  *Producer
	validator *Validator
	ch        chan Event
}

func NewDispatcher(log *zap.Logger, producer *Producer, validator *Validator, queueSize int) *Dispatcher {
	return &Dispatcher{
		log:       log,
		producer:  producer,
		validator: validator,
		ch:        make(chan Event, queueSize),
	}
}

func (d *Dispatcher) Enqueue(e Event) {
	select {
	case d.ch <- e:
		// ok
	default:
		// queue full — fire-and-forget, drop
		d.log.Warn("event queue full; dropping event",
			zap.String("type", e.Type), zap.String("key", e.Key))
		telemetry.IncEventsFailed("queue_full")
	}
	telemetry.SetEventQueueCurrent(len(d.ch))
}

func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Info("event dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.log.Info("event dispatcher stopped")
			return
		case e := <-d.ch:
			telemetry.SetEventQueueCurrent(len(d.ch))
			if err := d.validator.Validate(e.Type, e.Payload); err != nil {
				d.log.Error("event failed schema validation",
					zap.String("type", e.Type), zap.Error(err))
				telemetry.IncEventsFailed("schema")
				continue
			}
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := d.producer.Publish(pubCtx, e)
			cancel()
			if err != nil {
				d.log.Error("event publish failed",
					zap.String("type", e.Type), zap.Error(err))
				telemetry.IncEventsFailed("kafka")
				continue
			}
			telemetry.IncEventsPublished()
		}
	}
}
