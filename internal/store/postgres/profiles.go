package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pbdna/brandvoice/internal/store"
	"github.com/pbdna/brandvoice/internal/voice"
)

// ProfileStore is a [store.ProfileStore] backed by PostgreSQL.
type ProfileStore struct {
	db DB
}

// Compile-time interface check.
var _ store.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates a ProfileStore over the given connection or pool.
// The caller is responsible for running [Migrate] before issuing queries.
func NewProfileStore(db DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Save inserts a new profile, assigning a fresh UUID and timestamps.
func (s *ProfileStore) Save(ctx context.Context, p *store.Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("postgres: profile user_id must not be empty")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	sigJSON, err := json.Marshal(p.Signature)
	if err != nil {
		return fmt.Errorf("postgres: marshal signature: %w", err)
	}

	const query = `
		INSERT INTO voice_profiles (id, user_id, signature, signature_vec, confidence)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err = s.db.QueryRow(ctx, query,
		p.ID, p.UserID, sigJSON, signatureVector(p.Signature), p.Confidence,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: save profile: %w", err)
	}
	return nil
}

// Get returns the most recently updated profile for userID.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*store.Profile, error) {
	const query = `
		SELECT id, user_id, signature, confidence, created_at, updated_at
		FROM voice_profiles
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	p, err := scanProfile(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("postgres: profile for user %q: %w", userID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("postgres: get profile: %w", err)
	}
	return p, nil
}

// UpdateSignature merges scores into the stored signature, replaces the
// confidence, bumps updated_at, and keeps the similarity vector in sync.
// The merge happens in Go under the row's current value; concurrent updates
// to the same profile resolve last-writer-wins, which matches the single-
// writer-per-profile usage of the pipeline.
func (s *ProfileStore) UpdateSignature(ctx context.Context, id string, scores map[voice.Dimension]float64, confidence float64) (*store.Profile, error) {
	const selectQuery = `
		SELECT id, user_id, signature, confidence, created_at, updated_at
		FROM voice_profiles
		WHERE id = $1`

	p, err := scanProfile(s.db.QueryRow(ctx, selectQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("postgres: profile %q: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("postgres: update signature: %w", err)
	}

	for dim, score := range scores {
		p.Signature[dim] = score
	}
	p.Confidence = confidence

	sigJSON, err := json.Marshal(p.Signature)
	if err != nil {
		return nil, fmt.Errorf("postgres: marshal signature: %w", err)
	}

	const updateQuery = `
		UPDATE voice_profiles
		SET signature = $2, signature_vec = $3, confidence = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = s.db.QueryRow(ctx, updateQuery,
		p.ID, sigJSON, signatureVector(p.Signature), p.Confidence,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: update signature: %w", err)
	}
	return p, nil
}

// Similar returns up to limit profiles ordered by ascending cosine distance
// to sig (most similar first).
func (s *ProfileStore) Similar(ctx context.Context, sig voice.Signature, limit int) ([]store.Profile, error) {
	if limit <= 0 {
		limit = 10
	}

	const query = `
		SELECT id, user_id, signature, confidence, created_at, updated_at
		FROM voice_profiles
		ORDER BY signature_vec <=> $1
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, signatureVector(sig), limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: similar profiles: %w", err)
	}
	defer rows.Close()

	var profiles []store.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: similar profiles scan: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: similar profiles: %w", err)
	}
	return profiles, nil
}

// scanProfile reads one voice_profiles row.
func scanProfile(row pgx.Row) (*store.Profile, error) {
	var p store.Profile
	var sigJSON []byte
	if err := row.Scan(&p.ID, &p.UserID, &sigJSON, &p.Confidence, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sigJSON, &p.Signature); err != nil {
		return nil, fmt.Errorf("unmarshal signature: %w", err)
	}
	return &p, nil
}
