package jsonc_test

import (
	"testing"

	"timelevel/internal/platform/jsonc"
)

func TestDecodeAcceptsComments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{name: "line comment", input: "{\n// note\n\"levelUpHours\": 12\n}"},
		{name: "block comment", input: `{"levelUpHours": /* hours */ 12}`},
		{name: "plain json", input: `{"levelUpHours": 12}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var dest map[string]any
			if err := jsonc.Decode([]byte(tt.input), &dest); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if dest["levelUpHours"] != float64(12) {
				t.Fatalf("expected 12, got %v", dest["levelUpHours"])
			}
		})
	}
}

func TestDecodeRejectsBrokenDocument(t *testing.T) {
	t.Parallel()
	var dest map[string]any
	if err := jsonc.Decode([]byte("{not json"), &dest); err == nil {
		t.Fatalf("expected error for broken document")
	}
}
