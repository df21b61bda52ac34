// Package postgres implements the store interfaces on PostgreSQL with the
// pgvector extension. Voice signatures are persisted twice: as JSONB for
// lossless round-tripping and as a vector(14) column (canonical dimension
// order) for cosine-distance similarity search.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/pbdna/brandvoice/internal/voice"
)

// Schema is the SQL DDL for the brandvoice tables. Execute it via [Migrate]
// or apply it manually during deployment. The signature vector dimension
// matches the canonical voice-dimension count.
const Schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS voice_profiles (
    id             TEXT PRIMARY KEY,
    user_id        TEXT NOT NULL,
    signature      JSONB NOT NULL,
    signature_vec  vector(14) NOT NULL,
    confidence     DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_voice_profiles_user ON voice_profiles(user_id);
CREATE INDEX IF NOT EXISTS idx_voice_profiles_vec
    ON voice_profiles USING hnsw (signature_vec vector_cosine_ops);

CREATE TABLE IF NOT EXISTS content_templates (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    description    TEXT NOT NULL DEFAULT '',
    content_type   TEXT NOT NULL,
    structure      TEXT NOT NULL,
    variables      JSONB NOT NULL DEFAULT '{}',
    industry_tags  JSONB NOT NULL DEFAULT '[]',
    use_case       TEXT NOT NULL DEFAULT 'general',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_content_templates_type ON content_templates(content_type);
`

// DB is the database interface used by the stores. Both *pgxpool.Pool and
// *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewPool creates a pgx connection pool for dsn with pgvector types
// registered on every connection, so vector columns can be scanned into and
// inserted from pgvector.Vector values.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	return pool, nil
}

// Migrate executes the [Schema] DDL. It is idempotent and safe to run on
// every application start.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// signatureVector encodes a signature as a pgvector value in canonical
// dimension order. Missing dimensions encode as 0.
func signatureVector(sig voice.Signature) pgvector.Vector {
	dims := voice.Dimensions()
	vec := make([]float32, len(dims))
	for i, d := range dims {
		vec[i] = float32(sig[d])
	}
	return pgvector.NewVector(vec)
}
