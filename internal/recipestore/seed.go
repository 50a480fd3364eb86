package recipestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
)

// Seed writes every row of f in a single transaction, replacing rows with the same id.
func (s *SQLiteStore) Seed(ctx context.Context, f *Fixture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return seedFailed(err, "begin")
	}
	if err := seedTx(ctx, tx, f); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return seedFailed(err, "commit")
	}
	return nil
}

// Replace swaps the entire store contents for f in a single transaction.
// Readers never observe a partially loaded fixture.
func (s *SQLiteStore) Replace(ctx context.Context, f *Fixture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return seedFailed(err, "begin")
	}
	for _, table := range []string{"stage_recipe_steps", "recipe_template_steps", "stage_recipe_instances", "stages"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return seedFailed(err, "clear "+table)
		}
	}
	if err := seedTx(ctx, tx, f); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return seedFailed(err, "commit")
	}
	return nil
}

func seedTx(ctx context.Context, tx *sql.Tx, f *Fixture) error {
	for _, st := range f.Stages {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO stages (id, slug, display_name, recipe_template_id, active_recipe_instance_id)
			 VALUES (?, ?, ?, ?, ?)`,
			st.ID, st.Slug, st.DisplayName, st.RecipeTemplateID, nullable(st.ActiveInstanceID),
		)
		if err != nil {
			return seedFailed(err, "stage "+st.Slug)
		}
	}
	for _, inst := range f.Instances {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO stage_recipe_instances (id, stage_id, template_id, is_cloned, cloned_at)
			 VALUES (?, ?, ?, ?, ?)`,
			inst.ID, inst.StageID, inst.TemplateID, boolInt(inst.IsCloned), unixOrNil(inst.ClonedAt),
		)
		if err != nil {
			return seedFailed(err, "instance "+inst.ID)
		}
	}
	for _, st := range f.TemplateSteps {
		outputs, err := encodeColumn(st.Outputs())
		if err != nil {
			return seedFailed(err, "template step "+st.StepKey)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO recipe_template_steps
			 (id, template_id, step_number, step_key, step_name, job_type, output_type, outputs_required)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, st.TemplateID, st.StepNumber, st.StepKey, st.StepName, st.JobType, st.OutputType, outputs,
		)
		if err != nil {
			return seedFailed(err, "template step "+st.StepKey)
		}
	}
	for _, st := range f.ClonedSteps {
		outputs, err := encodeColumn(st.Outputs())
		if err != nil {
			return seedFailed(err, "cloned step "+st.StepKey)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO stage_recipe_steps
			 (id, instance_id, template_step_id, execution_order, step_key, step_name, job_type, output_type, outputs_required, is_skipped)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, st.InstanceID, nullable(st.TemplateStepID), st.ExecutionOrder, st.StepKey, st.StepName,
			st.JobType, st.OutputType, outputs, boolInt(st.Skipped),
		)
		if err != nil {
			return seedFailed(err, "cloned step "+st.StepKey)
		}
	}
	return nil
}

func seedFailed(err error, what string) error {
	return errors.WrapError(err, errors.CategoryStore, fmt.Sprintf("seed %s", what)).Build()
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
