package recipestore

const schema = `
CREATE TABLE IF NOT EXISTS stages (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	recipe_template_id TEXT NOT NULL DEFAULT '',
	active_recipe_instance_id TEXT
);
CREATE TABLE IF NOT EXISTS stage_recipe_instances (
	id TEXT PRIMARY KEY,
	stage_id TEXT NOT NULL,
	template_id TEXT NOT NULL,
	is_cloned INTEGER NOT NULL DEFAULT 0,
	cloned_at INTEGER
);
CREATE TABLE IF NOT EXISTS recipe_template_steps (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL,
	step_number INTEGER NOT NULL DEFAULT 0,
	step_key TEXT NOT NULL,
	step_name TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	output_type TEXT NOT NULL DEFAULT '',
	outputs_required TEXT
);
CREATE INDEX IF NOT EXISTS idx_template_steps_template ON recipe_template_steps(template_id);
CREATE TABLE IF NOT EXISTS stage_recipe_steps (
	id TEXT PRIMARY KEY,
	instance_id TEXT NOT NULL,
	template_step_id TEXT,
	execution_order INTEGER NOT NULL DEFAULT 0,
	step_key TEXT NOT NULL,
	step_name TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	output_type TEXT NOT NULL DEFAULT '',
	outputs_required TEXT,
	is_skipped INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_stage_steps_instance ON stage_recipe_steps(instance_id);
`
