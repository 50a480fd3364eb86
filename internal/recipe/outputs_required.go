package recipe

type outputsKind uint8

const (
	outputsAbsent outputsKind = iota
	outputsStructured
	outputsEncoded
)

// OutputsRequired is a step's outputs declaration as delivered by the store:
// either an already-decoded value or JSON text that still has to be decoded.
// The zero value is an absent declaration.
type OutputsRequired struct {
	kind  outputsKind
	value any
	text  string
}

// Structured wraps an already-decoded declaration. A nil value is absent.
func Structured(v any) OutputsRequired {
	if v == nil {
		return OutputsRequired{}
	}
	return OutputsRequired{kind: outputsStructured, value: v}
}

// Encoded wraps declaration text that must be decoded before inspection.
func Encoded(text string) OutputsRequired {
	return OutputsRequired{kind: outputsEncoded, text: text}
}

// IsAbsent reports whether no declaration was delivered.
func (o OutputsRequired) IsAbsent() bool { return o.kind == outputsAbsent }

// Value returns the structured declaration, if that is what was delivered.
func (o OutputsRequired) Value() (any, bool) {
	return o.value, o.kind == outputsStructured
}

// Text returns the encoded declaration, if that is what was delivered.
func (o OutputsRequired) Text() (string, bool) {
	return o.text, o.kind == outputsEncoded
}
