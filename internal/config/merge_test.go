package config

import (
	"reflect"
	"testing"
)

func TestMergeLayers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     map[string]any
		platform map[string]any
		format   map[string]any
		want     map[string]any
	}{
		{
			name:     "format layer wins over platform layer",
			base:     map[string]any{"a": 1, "b": 2},
			platform: map[string]any{"b": 3},
			format:   map[string]any{"b": 4, "c": 5},
			want:     map[string]any{"a": 1, "b": 4, "c": 5},
		},
		{
			name: "nil layers are no-ops",
			base: map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name:     "platform layer overrides base",
			base:     map[string]any{"icon": "default.png"},
			platform: map[string]any{"icon": "mac.icns"},
			want:     map[string]any{"icon": "mac.icns"},
		},
		{
			name:   "empty base",
			format: map[string]any{"c": 5},
			want:   map[string]any{"c": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mergeLayers(tt.base, tt.platform, tt.format)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mergeLayers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeLayers_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := map[string]any{"a": 1, "b": 2}
	platform := map[string]any{"b": 3}

	mergeLayers(base, platform, map[string]any{"b": 4})

	if base["b"] != 2 {
		t.Errorf("base was mutated: b = %v, want 2", base["b"])
	}
	if platform["b"] != 3 {
		t.Errorf("platform layer was mutated: b = %v, want 3", platform["b"])
	}
}

func TestScalarFields(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"version": "1.0.0",
		"sources": []any{"src"},
		"darwin":  map[string]any{"icon": "mac.icns"},
	}

	got := scalarFields(m)
	if _, ok := got["darwin"]; ok {
		t.Error("scalarFields kept a sub-table")
	}
	if got["version"] != "1.0.0" {
		t.Errorf("version = %v, want 1.0.0", got["version"])
	}
	if _, ok := got["sources"]; !ok {
		t.Error("scalarFields dropped an array field")
	}
}

func TestTableAt(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"tool": map[string]any{
			"valise": map[string]any{"version": "1.0.0"},
		},
	}

	if got := tableAt(m, "tool", "valise"); got == nil || got["version"] != "1.0.0" {
		t.Errorf("tableAt(tool, valise) = %v", got)
	}
	if got := tableAt(m, "tool", "other"); got != nil {
		t.Errorf("tableAt(tool, other) = %v, want nil", got)
	}
	if got := tableAt(nil, "tool"); got != nil {
		t.Errorf("tableAt(nil, tool) = %v, want nil", got)
	}
}
