package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"orgregistry/pkg/domain"
)

// Notifier publishes membership revocation notifications. Fire and forget
// from the caller's point of view: the participant update that triggered
// the revocation has already been persisted when this runs.
type Notifier struct {
	producer Producer
}

// NewNotifier constructs a Notifier on top of a producing client.
func NewNotifier(producer Producer) *Notifier {
	return &Notifier{producer: producer}
}

type revocationEvent struct {
	EventID string `json:"eventId"`
	OrgID   string `json:"orgId"`
}

// NotifyRevoked publishes that an organization's membership was revoked.
func (n *Notifier) NotifyRevoked(ctx context.Context, orgID domain.OrganizationID) error {
	payload, err := json.Marshal(revocationEvent{
		EventID: uuid.NewString(),
		OrgID:   orgID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal revocation event: %w", err)
	}
	record := &kgo.Record{
		Topic: TopicMembershipRevoked,
		Key:   []byte(orgID.String()),
		Value: payload,
	}
	if err := n.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce revocation event: %w", err)
	}
	return nil
}
