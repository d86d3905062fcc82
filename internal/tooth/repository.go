package tooth

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles database operations for teeth and conditions
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new tooth repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListTeeth returns the full 32-tooth master data ordered by quadrant and position
func (r *Repository) ListTeeth(ctx context.Context) ([]Tooth, error) {
	query := `
		SELECT id, number, name, quadrant, position
		FROM clinic.teeth
		ORDER BY quadrant, position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teeth: %w", err)
	}
	defer rows.Close()

	var teeth []Tooth
	for rows.Next() {
		var t Tooth
		if err := rows.Scan(&t.ID, &t.Number, &t.Name, &t.Quadrant, &t.Position); err != nil {
			return nil, fmt.Errorf("failed to scan tooth: %w", err)
		}
		teeth = append(teeth, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teeth: %w", err)
	}

	return teeth, nil
}

// GetToothByNumber returns one tooth by its double-digit number
func (r *Repository) GetToothByNumber(ctx context.Context, number int) (*Tooth, error) {
	query := `
		SELECT id, number, name, quadrant, position
		FROM clinic.teeth
		WHERE number = $1`

	var t Tooth
	err := r.db.QueryRowContext(ctx, query, number).Scan(&t.ID, &t.Number, &t.Name, &t.Quadrant, &t.Position)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tooth %d: %w", number, err)
	}

	return &t, nil
}

// ListConditions returns all tooth conditions ordered by name
func (r *Repository) ListConditions(ctx context.Context) ([]ToothCondition, error) {
	query := `
		SELECT id, name, COALESCE(description, '')
		FROM clinic.tooth_conditions
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tooth conditions: %w", err)
	}
	defer rows.Close()

	var conditions []ToothCondition
	for rows.Next() {
		var c ToothCondition
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan tooth condition: %w", err)
		}
		conditions = append(conditions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tooth conditions: %w", err)
	}

	return conditions, nil
}

// GetCondition returns one tooth condition by ID
func (r *Repository) GetCondition(ctx context.Context, id string) (*ToothCondition, error) {
	query := `
		SELECT id, name, COALESCE(description, '')
		FROM clinic.tooth_conditions
		WHERE id = $1`

	var c ToothCondition
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err == sql.ErrNoRows {
		return nil, ErrConditionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tooth condition: %w", err)
	}

	return &c, nil
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
