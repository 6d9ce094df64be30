package models

import (
	"strings"

	"orgregistry/pkg/domain"
	dErrors "orgregistry/pkg/domain-errors"
)

// ConnectorRecord registers a data-plane connector for an organization.
// Keyed by (OrganizationID, ConnectorID); created, updated and deleted
// independently of the participant itself.
//
// AccessToken is plaintext in memory and AEAD-encrypted by the store before
// it reaches a row. It is serialized only on paths the visibility filter
// has cleared for the owning representative.
type ConnectorRecord struct {
	OrganizationID domain.OrganizationID `json:"orgId"`
	ConnectorID    string                `json:"connectorId"`
	Endpoint       string                `json:"endpoint"`
	AccessToken    string                `json:"accessToken,omitempty"`
	BucketNames    []string              `json:"bucketNames,omitempty"`
}

// Validate checks the record's own invariants.
func (c *ConnectorRecord) Validate() error {
	if c.OrganizationID.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "organization id is required")
	}
	if strings.TrimSpace(c.ConnectorID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "connector id is required")
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "connector endpoint is required")
	}
	return nil
}

// Clone returns a deep copy.
func (c ConnectorRecord) Clone() ConnectorRecord {
	out := c
	out.BucketNames = append([]string(nil), c.BucketNames...)
	return out
}
