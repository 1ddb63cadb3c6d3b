package config

import "maps"

// mergeLayers overlays the platform and output-format override sections
// onto an app's base fields. Later layers win on key collision. Inputs
// are never mutated; a nil layer is a no-op.
func mergeLayers(base, platformLayer, formatLayer map[string]any) map[string]any {
	merged := make(map[string]any, len(base))
	maps.Copy(merged, base)
	maps.Copy(merged, platformLayer)
	maps.Copy(merged, formatLayer)
	return merged
}

// scalarFields copies m without its sub-tables. Sub-tables under an app
// section are platform/format override sections, not app fields, and
// none of the config schema's own fields are table-valued.
func scalarFields(m map[string]any) map[string]any {
	fields := make(map[string]any, len(m))
	for k, v := range m {
		if _, isTable := v.(map[string]any); isTable {
			continue
		}
		fields[k] = v
	}
	return fields
}

// tableAt walks nested tables by key, returning nil if any step is
// absent or not a table.
func tableAt(m map[string]any, path ...string) map[string]any {
	for _, key := range path {
		next, ok := m[key].(map[string]any)
		if !ok {
			return nil
		}
		m = next
	}
	return m
}
