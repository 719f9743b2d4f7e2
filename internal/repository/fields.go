package repository

// NormalizeUpdateFields strips nil, nil-pointer and empty-string entries from
// a partial-update map. A field absent from the map is left untouched by the
// update, so callers can pass optional fields straight through.
func NormalizeUpdateFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case nil:
			continue
		case string:
			if tv == "" {
				continue
			}
		case *string:
			if tv == nil || *tv == "" {
				continue
			}
		}
		out[k] = v
	}
	return out
}
