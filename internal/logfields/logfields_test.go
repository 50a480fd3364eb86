package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name string
		key  string
		attr slog.Attr
	}{
		{"Stage", KeyStage, Stage("thesis")},
		{"OutputKey", KeyOutputKey, OutputKey("business_case")},
		{"InstanceID", KeyInstanceID, InstanceID("instance-1")},
		{"StepSource", KeyStepSource, StepSource("cloned")},
		{"Reason", KeyReason, Reason("is_json")},
		{"DecisionID", KeyDecisionID, DecisionID("d-1")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.attr.Key != c.key {
				t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.key)
			}
		})
	}
}

func TestErrorAttr(t *testing.T) {
	if v := Error(nil).Value.String(); v != "" {
		t.Errorf("nil error should produce empty value, got %q", v)
	}
	if v := Error(errors.New("boom")).Value.String(); v != "boom" {
		t.Errorf("expected boom, got %q", v)
	}
}

func TestIntAttrs(t *testing.T) {
	if got := StepCount(3).Value.Int64(); got != 3 {
		t.Errorf("StepCount = %d", got)
	}
	if got := KeyCount(2).Value.Int64(); got != 2 {
		t.Errorf("KeyCount = %d", got)
	}
}
