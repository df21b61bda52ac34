package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pbdna/brandvoice/internal/content"
	"github.com/pbdna/brandvoice/internal/store"
)

// TemplateStore is a [store.TemplateStore] backed by PostgreSQL. It also
// satisfies [content.TemplateSource], so it can feed the selector directly.
type TemplateStore struct {
	db DB
}

// Compile-time interface checks.
var (
	_ store.TemplateStore    = (*TemplateStore)(nil)
	_ content.TemplateSource = (*TemplateStore)(nil)
)

// NewTemplateStore creates a TemplateStore over the given connection or
// pool. The caller is responsible for running [Migrate] before issuing
// queries.
func NewTemplateStore(db DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Templates returns all stored templates, newest first.
func (s *TemplateStore) Templates(ctx context.Context) ([]content.Template, error) {
	const query = `
		SELECT id, name, description, content_type, structure, variables, industry_tags, use_case
		FROM content_templates
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: list templates: %w", err)
	}
	defer rows.Close()

	var templates []content.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: list templates scan: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list templates: %w", err)
	}
	return templates, nil
}

// Get returns the template with the given ID.
func (s *TemplateStore) Get(ctx context.Context, id string) (*content.Template, error) {
	const query = `
		SELECT id, name, description, content_type, structure, variables, industry_tags, use_case
		FROM content_templates
		WHERE id = $1`

	t, err := scanTemplate(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("postgres: template %q: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("postgres: get template: %w", err)
	}
	return t, nil
}

// Create inserts a new template.
func (s *TemplateStore) Create(ctx context.Context, t *content.Template) error {
	if t.ID == "" {
		return fmt.Errorf("postgres: template id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("postgres: template name must not be empty")
	}

	varsJSON, err := json.Marshal(emptyMap(t.Variables))
	if err != nil {
		return fmt.Errorf("postgres: marshal variables: %w", err)
	}
	tagsJSON, err := json.Marshal(emptySlice(t.IndustryTags))
	if err != nil {
		return fmt.Errorf("postgres: marshal industry_tags: %w", err)
	}

	const query = `
		INSERT INTO content_templates (id, name, description, content_type, structure, variables, industry_tags, use_case)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.Exec(ctx, query,
		t.ID, t.Name, t.Description, string(t.ContentType), t.Structure,
		varsJSON, tagsJSON, defaultUseCase(t.UseCase),
	)
	if err != nil {
		return fmt.Errorf("postgres: create template: %w", err)
	}
	return nil
}

// scanTemplate reads one content_templates row.
func scanTemplate(row pgx.Row) (*content.Template, error) {
	var t content.Template
	var contentType string
	var varsJSON, tagsJSON []byte

	if err := row.Scan(&t.ID, &t.Name, &t.Description, &contentType, &t.Structure,
		&varsJSON, &tagsJSON, &t.UseCase); err != nil {
		return nil, err
	}
	t.ContentType = content.ContentType(contentType)

	if err := json.Unmarshal(varsJSON, &t.Variables); err != nil {
		return nil, fmt.Errorf("unmarshal variables: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &t.IndustryTags); err != nil {
		return nil, fmt.Errorf("unmarshal industry_tags: %w", err)
	}
	return &t, nil
}

// defaultUseCase returns the use case, defaulting to "general" if empty.
func defaultUseCase(uc string) string {
	if uc == "" {
		return "general"
	}
	return uc
}

// emptySlice returns s if non-nil, otherwise an empty non-nil slice, so
// JSON marshalling produces "[]" instead of "null".
func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// emptyMap returns m if non-nil, otherwise an empty non-nil map, so JSON
// marshalling produces "{}" instead of "null".
func emptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
