package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-checkout/internal/docstore"
	"ms-checkout/internal/kafka"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

// Recorder is the event-emission port injected into the checkout and
// landing pipelines. One call per phase; implementations must never
// fail the caller.
type Recorder interface {
	Record(ctx context.Context, phase string, data map[string]any)
}

// Trail writes each phase event to the logs collection and, when a
// producer is wired, mirrors it onto the audit topic. Both sinks are
// best effort: a failed write is logged and swallowed so the audit
// trail can never abort a checkout or a landing render.
type Trail struct {
	Store    *docstore.Store
	Producer *kafka.Producer
	Topic    string
	Logger   *logger.Logger
}

func NewTrail(store *docstore.Store, producer *kafka.Producer, topic string, log *logger.Logger) *Trail {
	return &Trail{Store: store, Producer: producer, Topic: topic, Logger: log}
}

func (t *Trail) Record(ctx context.Context, phase string, data map[string]any) {
	record := models.AuditRecord{
		ID:    uuid.NewString(),
		Phase: phase,
		Data:  data,
		TS:    time.Now().UTC(),
	}

	if t.Store != nil {
		if err := t.Store.InsertAuditRecord(ctx, record); err != nil {
			t.Logger.Error("AUDIT", fmt.Sprintf("failed to append %s record: %v", phase, err))
		}
	}

	if t.Producer != nil && t.Topic != "" {
		msg, err := json.Marshal(record)
		if err != nil {
			t.Logger.Error("AUDIT", fmt.Sprintf("failed to marshal %s record: %v", phase, err))
			return
		}
		if err := t.Producer.Publish(ctx, t.Topic, phase, msg); err != nil {
			t.Logger.Error("AUDIT", fmt.Sprintf("failed to publish %s record: %v", phase, err))
		}
	}
}

// Noop is a Recorder that drops everything; handy in tests.
type Noop struct{}

func (Noop) Record(context.Context, string, map[string]any) {}
