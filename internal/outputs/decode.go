package outputs

import (
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/rendergate/internal/recipe"
)

// DecodeResult is the outcome of decoding one step's declaration.
// Exactly one of Value (possibly nil) or Err is meaningful, selected by OK.
type DecodeResult struct {
	Value any
	Err   string
	OK    bool
}

func decoded(v any) DecodeResult { return DecodeResult{Value: v, OK: true} }

func failed(msg string) DecodeResult { return DecodeResult{Err: msg} }

// Decode turns a declaration into an untyped value. Absent and blank
// declarations decode to nil. Text that is not valid JSON fails with the
// decoder's message.
func Decode(o recipe.OutputsRequired) DecodeResult {
	if v, ok := o.Value(); ok {
		return decoded(v)
	}
	text, ok := o.Text()
	if !ok || strings.TrimSpace(text) == "" {
		return decoded(nil)
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return failed(err.Error())
	}
	return decoded(v)
}
