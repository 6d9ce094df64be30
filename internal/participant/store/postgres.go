// Package store persists organization metadata, the locally-owned half of a
// participant. Rows are keyed by the bare organization id and are never
// deleted while the organization exists. Writes are last-write-wins; there
// is no optimistic concurrency token.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
	"orgregistry/pkg/requestcontext"
)

// Postgres persists organization metadata in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed metadata store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindByOrgID(ctx context.Context, orgID domain.OrganizationID) (*models.OrganizationMetadata, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT org_id, mail_address, membership_class, active
		FROM organization_metadata
		WHERE org_id = $1
	`, orgID.String())

	md, err := scanMetadata(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find organization metadata: %w", err)
	}
	return md, nil
}

func (s *Postgres) Save(ctx context.Context, md *models.OrganizationMetadata) (*models.OrganizationMetadata, error) {
	if md == nil {
		return nil, fmt.Errorf("organization metadata is required")
	}
	now := requestcontext.Now(ctx)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organization_metadata (org_id, mail_address, membership_class, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (org_id) DO UPDATE SET
			mail_address = EXCLUDED.mail_address,
			membership_class = EXCLUDED.membership_class,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`, md.OrganizationID.String(), md.MailAddress, string(md.MembershipClass), md.Active, now)
	if err != nil {
		return nil, fmt.Errorf("save organization metadata: %w", err)
	}
	saved := *md
	return &saved, nil
}

func (s *Postgres) FindByMembershipClass(ctx context.Context, class models.MembershipClass) ([]*models.OrganizationMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT org_id, mail_address, membership_class, active
		FROM organization_metadata
		WHERE membership_class = $1
		ORDER BY org_id
	`, string(class))
	if err != nil {
		return nil, fmt.Errorf("find metadata by membership class: %w", err)
	}
	defer rows.Close()

	var out []*models.OrganizationMetadata
	for rows.Next() {
		md, err := scanMetadata(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization metadata: %w", err)
		}
		out = append(out, md)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organization metadata: %w", err)
	}
	return out, nil
}

func (s *Postgres) ListInactiveOrgIDs(ctx context.Context) ([]domain.OrganizationID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT org_id FROM organization_metadata WHERE NOT active ORDER BY org_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list inactive organizations: %w", err)
	}
	defer rows.Close()

	var out []domain.OrganizationID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan organization id: %w", err)
		}
		out = append(out, domain.OrganizationID(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organization ids: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row rowScanner) (*models.OrganizationMetadata, error) {
	var md models.OrganizationMetadata
	var rawID, rawClass string
	if err := row.Scan(&rawID, &md.MailAddress, &rawClass, &md.Active); err != nil {
		return nil, err
	}
	md.OrganizationID = domain.OrganizationID(rawID)
	md.MembershipClass = models.MembershipClass(rawClass)
	return &md, nil
}
