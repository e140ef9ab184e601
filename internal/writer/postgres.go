package writer

import (
	"context"
	"fmt"

	"geosplit/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresWriter persists leaves into a leaf_points table, one row per
// point, tagged with the leaf identifier and a PostGIS geography column.
type PostgresWriter struct {
	db *pgxpool.Pool
}

// NewPostgresWriter creates a new PostgreSQL leaf writer.
func NewPostgresWriter(db *pgxpool.Pool) *PostgresWriter {
	return &PostgresWriter{db: db}
}

// EnsureSchema creates the leaf_points table and its indexes if needed.
func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS leaf_points (
		id BIGSERIAL PRIMARY KEY,
		leaf_id VARCHAR(255) NOT NULL,
		payload TEXT,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS leaf_points_leaf_id_idx ON leaf_points (leaf_id);
	CREATE INDEX IF NOT EXISTS leaf_points_geom_idx ON leaf_points USING GIST (geom);
	`
	if _, err := w.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("writer: failed to create schema: %w", err)
	}
	return nil
}

// WriteLeaf bulk-inserts one leaf's points via CopyFrom.
func (w *PostgresWriter) WriteLeaf(ctx context.Context, id string, points []models.Point) error {
	_, err := w.db.CopyFrom(
		ctx,
		pgx.Identifier{"leaf_points"},
		[]string{"leaf_id", "payload", "geom"},
		pgx.CopyFromSlice(len(points), func(i int) ([]interface{}, error) {
			p := points[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", p.Longitude, p.Latitude) // PostGIS format: lon lat
			return []interface{}{id, payloadText(p), geom}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("writer: failed to copy leaf %q: %w", id, err)
	}
	return nil
}

func payloadText(p models.Point) string {
	switch v := p.Payload.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
