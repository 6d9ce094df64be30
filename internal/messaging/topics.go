// Package messaging relays organization lookups over the platform bus and
// publishes membership revocation notifications. The bus has no error
// channel back to a requester, so every lookup failure is answered with an
// explicit not-found sentinel and detail goes to the logs only.
package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Bus topics. Request topics carry a reply-topic header naming where the
// requester listens; the revocation topic is notify-only.
const (
	TopicOrganizationRequest = "orgregistry.organization.request"
	TopicConnectorRequest    = "orgregistry.connector.request"
	TopicMembershipRevoked   = "orgregistry.membership.revoked"
)

// Record headers used by the request/reply convention.
const (
	HeaderCorrelationID = "correlation-id"
	HeaderReplyTopic    = "reply-topic"
)

// EnsureTopics creates the service's topics if they do not exist yet.
// Already-existing topics are not an error.
func EnsureTopics(ctx context.Context, client *kgo.Client) error {
	adm := kadm.NewClient(client)
	responses, err := adm.CreateTopics(ctx, 1, 1, nil,
		TopicOrganizationRequest,
		TopicConnectorRequest,
		TopicMembershipRevoked,
	)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, resp := range responses {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}
