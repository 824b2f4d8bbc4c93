package errormap

// Entry is a single structured violation reported to the client.
// Keys in the surrounding Map identify the violation type, e.g.
// "shoppingList/update/invalidState".
type Entry struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	ParamMap map[string]any `json:"paramMap,omitempty"`
}

// Map accumulates violations keyed by violation type. One key per
// violation; a second Add with the same key overwrites, which is fine
// because each validation predicate owns its own key.
type Map map[string]Entry

// New returns an empty, non-nil map so it marshals as {} and not null.
func New() Map {
	return Map{}
}

func (m Map) Add(key, message string, paramMap map[string]any) {
	m[key] = Entry{Type: "error", Message: message, ParamMap: paramMap}
}

func (m Map) Empty() bool {
	return len(m) == 0
}

// Wrap merges a payload with the reserved uuAppErrorMap field. The field is
// always present, even when errs is nil, so clients can rely on it.
func Wrap(payload map[string]any, errs Map) map[string]any {
	out := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	if errs == nil {
		errs = New()
	}
	out["uuAppErrorMap"] = errs
	return out
}
