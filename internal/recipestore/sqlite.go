package recipestore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/recipe"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStore implements recipe.Reader using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ recipe.Reader = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
// Use MemoryPath for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "open recipe store").
			WithContext("path", dbPath).Build()
	}
	if dbPath == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStore, "initialize recipe store schema").Build()
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return queryFailed(err, "ping")
	}
	return nil
}

// StageBySlug implements recipe.StageReader.
func (s *SQLiteStore) StageBySlug(ctx context.Context, slug string) (*recipe.Stage, error) {
	var (
		st     recipe.Stage
		active sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, slug, display_name, recipe_template_id, active_recipe_instance_id FROM stages WHERE slug = ?",
		slug,
	).Scan(&st.ID, &st.Slug, &st.DisplayName, &st.RecipeTemplateID, &active)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, recipe.ErrStageNotFound.WithContext("slug", slug)
	}
	if err != nil {
		return nil, queryFailed(err, "stages")
	}
	if active.Valid && active.String != "" {
		id := active.String
		st.ActiveInstanceID = &id
	}
	return &st, nil
}

// InstanceByID implements recipe.InstanceReader.
func (s *SQLiteStore) InstanceByID(ctx context.Context, id string) (*recipe.Instance, error) {
	var (
		inst     recipe.Instance
		clonedAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, stage_id, template_id, is_cloned, cloned_at FROM stage_recipe_instances WHERE id = ?",
		id,
	).Scan(&inst.ID, &inst.StageID, &inst.TemplateID, &inst.IsCloned, &clonedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, recipe.ErrInstanceNotFound.WithContext("instance_id", id)
	}
	if err != nil {
		return nil, queryFailed(err, "stage_recipe_instances")
	}
	if clonedAt.Valid {
		t := time.Unix(clonedAt.Int64, 0).UTC()
		inst.ClonedAt = &t
	}
	return &inst, nil
}

// TemplateSteps implements recipe.TemplateStepReader.
func (s *SQLiteStore) TemplateSteps(ctx context.Context, templateID string) ([]recipe.Step, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, step_key, step_name, job_type, output_type, outputs_required
		 FROM recipe_template_steps WHERE template_id = ? ORDER BY step_number, id`,
		templateID,
	)
	if err != nil {
		return nil, queryFailed(err, "recipe_template_steps")
	}
	defer rows.Close()
	return scanSteps(rows, "recipe_template_steps")
}

// ClonedSteps implements recipe.ClonedStepReader. Skipped steps are not returned.
func (s *SQLiteStore) ClonedSteps(ctx context.Context, instanceID string) ([]recipe.Step, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, step_key, step_name, job_type, output_type, outputs_required
		 FROM stage_recipe_steps WHERE instance_id = ? AND is_skipped = 0 ORDER BY execution_order, id`,
		instanceID,
	)
	if err != nil {
		return nil, queryFailed(err, "stage_recipe_steps")
	}
	defer rows.Close()
	return scanSteps(rows, "stage_recipe_steps")
}

func scanSteps(rows *sql.Rows, table string) ([]recipe.Step, error) {
	var steps []recipe.Step
	for rows.Next() {
		var (
			st      recipe.Step
			outputs sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.StepKey, &st.StepName, &st.JobType, &st.OutputType, &outputs); err != nil {
			return nil, queryFailed(err, table)
		}
		st.OutputsRequired = decodeColumn(outputs)
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(err, table)
	}
	return steps, nil
}

func queryFailed(err error, table string) error {
	return errors.WrapError(err, recipe.ErrQueryFailed.Category(), recipe.ErrQueryFailed.Message()).
		Retryable().
		WithContext("table", table).
		Build()
}
