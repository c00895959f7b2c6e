// Package normalize converts arbitrarily-shaped backend JSON into canonical
// records. The backend's wire shapes drift between deployments (snake_case vs
// camelCase keys, flat vs nested relations, booleans encoded as numbers or
// strings), so every field is resolved through an ordered candidate-key list
// and bad values degrade to defaults instead of failing the record.
//
// All functions here are pure: they never error, never panic on malformed
// input, and never alias the raw input in their output.
package normalize

// Field returns the value of the first candidate key that is present in
// record with a non-nil value. It returns nil when record is nil or no
// candidate matches.
//
// Candidate order is the field's precedence order; declare it once per field
// so the wire contract stays auditable in one place.
func Field(record map[string]any, keys ...string) any {
	if record == nil {
		return nil
	}
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// NestedField resolves a field that normally lives on a nested relation
// object. It locates the first relation candidate that holds an object and
// resolves fieldKeys on it. When no relation object is present the field
// keys are tried flat on the record itself, which covers backends that
// denormalize the relation into the parent row.
func NestedField(record map[string]any, relationKeys, fieldKeys []string) any {
	if record == nil {
		return nil
	}
	for _, key := range relationKeys {
		if rel, ok := record[key].(map[string]any); ok {
			return Field(rel, fieldKeys...)
		}
	}
	return Field(record, fieldKeys...)
}
