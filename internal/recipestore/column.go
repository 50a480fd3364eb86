package recipestore

import (
	"database/sql"
	"encoding/json"

	"git.home.luguber.info/inful/rendergate/internal/recipe"
)

// decodeColumn maps the stored outputs_required text to the boundary variant.
// Undecodable text is passed on as encoded so the failure is reported per step.
func decodeColumn(col sql.NullString) recipe.OutputsRequired {
	if !col.Valid {
		return recipe.OutputsRequired{}
	}
	var v any
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		return recipe.Encoded(col.String)
	}
	if text, ok := v.(string); ok {
		return recipe.Encoded(text)
	}
	return recipe.Structured(v)
}

// encodeColumn is the inverse of decodeColumn.
func encodeColumn(o recipe.OutputsRequired) (any, error) {
	if text, ok := o.Text(); ok {
		b, err := json.Marshal(text)
		return string(b), err
	}
	if v, ok := o.Value(); ok {
		b, err := json.Marshal(v)
		return string(b), err
	}
	return nil, nil
}
