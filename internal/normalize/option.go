package normalize

// Option is a canonical id/label pair for select-style option lists (proxy
// groups, tag sets, platforms).
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var (
	optionIDKeys    = []string{"id", "_id", "uuid", "value", "key"}
	optionLabelKeys = []string{"label", "name", "title", "text"}
)

// NormalizeOption converts a raw backend record into an Option, or nil when
// the input is not an object or carries no identity. The label falls back to
// the id so the dashboard always has something to render.
func NormalizeOption(raw any) *Option {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	id := AsID(Field(rec, optionIDKeys...))
	if id == "" {
		return nil
	}

	label := AsString(Field(rec, optionLabelKeys...))
	if label == "" {
		label = id
	}
	return &Option{ID: id, Label: label}
}
