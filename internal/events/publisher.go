package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"feedback-service/internal/model"
)

const SubjectFeedbackReceived = "feedback.received"

type FeedbackPublisher interface {
	PublishFeedbackReceived(sub *model.FeedbackSubmission) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (FeedbackPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: nc}, nil
}

type FeedbackReceivedEvent struct {
	EventType    string    `json:"event_type"`
	SubmissionID uuid.UUID `json:"submission_id"`
	SiteID       uuid.UUID `json:"site_id"`
	CanteenID    uuid.UUID `json:"canteen_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (p *NatsPublisher) PublishFeedbackReceived(sub *model.FeedbackSubmission) error {
	event := FeedbackReceivedEvent{
		EventType:    SubjectFeedbackReceived,
		SubmissionID: sub.ID,
		SiteID:       sub.SiteID,
		CanteenID:    sub.CanteenID,
		SubmittedAt:  sub.SubmittedAt,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	if err := p.conn.Publish(SubjectFeedbackReceived, eventJSON); err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	return nil
}
