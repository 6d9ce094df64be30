// Package store persists connector registrations. Access tokens arrive
// already sealed by the service layer; rows never hold a plaintext token.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"orgregistry/internal/connector/models"
	"orgregistry/pkg/domain"
	"orgregistry/pkg/platform/sentinel"
	"orgregistry/pkg/requestcontext"
)

// Postgres persists connector records in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed connector store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindAllByOrgID(ctx context.Context, orgID domain.OrganizationID) ([]models.ConnectorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT org_id, connector_id, endpoint, access_token, bucket_names
		FROM connectors
		WHERE org_id = $1
		ORDER BY connector_id
	`, orgID.String())
	if err != nil {
		return nil, fmt.Errorf("list connectors: %w", err)
	}
	defer rows.Close()

	var out []models.ConnectorRecord
	for rows.Next() {
		rec, err := scanConnector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan connector: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connectors: %w", err)
	}
	return out, nil
}

func (s *Postgres) FindOne(ctx context.Context, orgID domain.OrganizationID, connectorID string) (*models.ConnectorRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT org_id, connector_id, endpoint, access_token, bucket_names
		FROM connectors
		WHERE org_id = $1 AND connector_id = $2
	`, orgID.String(), connectorID)

	rec, err := scanConnector(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find connector: %w", err)
	}
	return &rec, nil
}

func (s *Postgres) Save(ctx context.Context, rec *models.ConnectorRecord) error {
	if rec == nil {
		return fmt.Errorf("connector record is required")
	}
	now := requestcontext.Now(ctx)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO connectors (org_id, connector_id, endpoint, access_token, bucket_names, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (org_id, connector_id) DO UPDATE SET
			endpoint = EXCLUDED.endpoint,
			access_token = EXCLUDED.access_token,
			bucket_names = EXCLUDED.bucket_names,
			updated_at = EXCLUDED.updated_at
	`, rec.OrganizationID.String(), rec.ConnectorID, rec.Endpoint, rec.AccessToken, pq.Array(rec.BucketNames), now)
	if err != nil {
		return fmt.Errorf("save connector: %w", err)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, orgID domain.OrganizationID, connectorID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM connectors WHERE org_id = $1 AND connector_id = $2
	`, orgID.String(), connectorID)
	if err != nil {
		return fmt.Errorf("delete connector: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete connector: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConnector(row rowScanner) (models.ConnectorRecord, error) {
	var rec models.ConnectorRecord
	var rawOrg string
	var buckets pq.StringArray
	if err := row.Scan(&rawOrg, &rec.ConnectorID, &rec.Endpoint, &rec.AccessToken, &buckets); err != nil {
		return models.ConnectorRecord{}, err
	}
	rec.OrganizationID = domain.OrganizationID(rawOrg)
	rec.BucketNames = []string(buckets)
	return rec, nil
}
