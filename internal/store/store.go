// Package store defines the persistence interfaces for voice profiles and
// content templates. Persistence is surrounding-service glue: the analysis
// and generation core treats stored entities as plain parameters and return
// values, and implementations live in subpackages (see [postgres]).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/pbdna/brandvoice/internal/content"
	"github.com/pbdna/brandvoice/internal/voice"
)

// ErrNotFound is returned by lookups for entities that do not exist.
var ErrNotFound = errors.New("store: not found")

// Profile is a persisted voice profile. The signature is immutable once
// stored except through [ProfileStore.UpdateSignature], which merges new
// dimension scores and bumps UpdatedAt.
type Profile struct {
	// ID uniquely identifies the profile.
	ID string

	// UserID is the owning user.
	UserID string

	// Signature is the complete 14-dimension voice signature.
	Signature voice.Signature

	// Confidence is the confidence score derived with the signature.
	Confidence float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileStore persists voice profiles.
type ProfileStore interface {
	// Save inserts a new profile. The implementation assigns ID, CreatedAt,
	// and UpdatedAt.
	Save(ctx context.Context, p *Profile) error

	// Get returns the most recent profile for a user, or [ErrNotFound].
	Get(ctx context.Context, userID string) (*Profile, error)

	// UpdateSignature merges the given dimension scores into the stored
	// profile's signature (new scores overwrite, untouched dimensions
	// survive), updates the confidence, and bumps UpdatedAt. Returns
	// [ErrNotFound] for an unknown profile ID.
	UpdateSignature(ctx context.Context, id string, scores map[voice.Dimension]float64, confidence float64) (*Profile, error)

	// Similar returns up to limit profiles whose signatures are closest to
	// sig, most similar first.
	Similar(ctx context.Context, sig voice.Signature, limit int) ([]Profile, error)
}

// TemplateStore persists content templates. It doubles as the selector's
// template source (see [content.TemplateSource]).
type TemplateStore interface {
	// Templates returns all stored templates.
	Templates(ctx context.Context) ([]content.Template, error)

	// Get returns the template with the given ID, or [ErrNotFound].
	Get(ctx context.Context, id string) (*content.Template, error)

	// Create inserts a new template.
	Create(ctx context.Context, t *content.Template) error
}
