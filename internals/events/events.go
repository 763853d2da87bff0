// file: internals/events/events.go
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event types emitted by the grade workflow. Subscribers (the notification
// dispatcher) consume these; delivery failure never rolls back the state
// transition that produced the event.
const (
	TypeGradeSubmissionSubmitted = "grade_submission.submitted"
	TypeGradeSubmissionApproved  = "grade_submission.approved"
	TypeGradeSubmissionRejected  = "grade_submission.rejected"
)

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

/* ============================================
   Outbox model
============================================ */

type DomainEventModel struct {
	DomainEventID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:domain_event_id" json:"domain_event_id"`
	DomainEventType        string         `gorm:"type:text;not null;column:domain_event_type" json:"domain_event_type"`
	DomainEventPayload     datatypes.JSON `gorm:"type:jsonb;column:domain_event_payload" json:"domain_event_payload,omitempty"`
	DomainEventOccurredAt  time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:domain_event_occurred_at" json:"domain_event_occurred_at"`
	DomainEventPublishedAt *time.Time     `gorm:"type:timestamptz;column:domain_event_published_at" json:"domain_event_published_at,omitempty"`
}

func (DomainEventModel) TableName() string { return "domain_events" }

/* ============================================
   Publisher
============================================ */

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// LogPublisher is the default when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, evt Event) error {
	log.Printf("[EVENT] %s payload=%v", evt.Type, evt.Payload)
	return nil
}

// NATSPublisher pushes events onto a NATS subject per event type,
// e.g. "schoolku.grade_submission.rejected".
type NATSPublisher struct {
	Conn   *nats.Conn
	Prefix string
}

func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "schoolku"
	}
	return &NATSPublisher{Conn: nc, Prefix: prefix}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.Conn.Publish(p.Prefix+"."+evt.Type, data)
}

/* ============================================
   Emitter (outbox + best-effort publish)
============================================ */

// Emitter records the event in the outbox inside the caller's transaction,
// then publishes best-effort after commit. A broker outage only leaves the
// outbox row unmarked; it never fails the business operation.
type Emitter struct {
	pub Publisher
}

func NewEmitter(pub Publisher) *Emitter {
	if pub == nil {
		pub = LogPublisher{}
	}
	return &Emitter{pub: pub}
}

// Record writes the outbox row using tx (part of the business transaction).
func (e *Emitter) Record(tx *gorm.DB, evt Event) (*DomainEventModel, error) {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, err
	}
	row := &DomainEventModel{
		DomainEventType:    evt.Type,
		DomainEventPayload: datatypes.JSON(payload),
	}
	if err := tx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Dispatch publishes the event and, on success, stamps the outbox row.
// Called after the owning transaction committed.
func (e *Emitter) Dispatch(ctx context.Context, db *gorm.DB, row *DomainEventModel, evt Event) {
	if row == nil {
		return
	}
	if err := e.pub.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] event publish failed type=%s err=%v", evt.Type, err)
		return
	}
	now := time.Now()
	if err := db.Model(&DomainEventModel{}).
		Where("domain_event_id = ?", row.DomainEventID).
		UpdateColumn("domain_event_published_at", now).Error; err != nil {
		log.Printf("[WARN] event mark published failed id=%s err=%v", row.DomainEventID, err)
	}
}
