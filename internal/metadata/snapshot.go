package metadata

// Snapshot converts a module to a canonical-JSON-friendly map. Collections
// stay in enumeration order (arrays preserve order; object keys are sorted
// by the canonical encoder). Used for golden files and module fingerprints.
func Snapshot(m *Module) map[string]any {
	types := make([]any, len(m.Types))
	for i, t := range m.Types {
		types[i] = snapshotType(t)
	}
	return map[string]any{
		"name":  m.Name,
		"types": types,
	}
}

func snapshotType(t *TypeDef) map[string]any {
	obj := map[string]any{
		"name": t.FullName(),
	}
	if len(t.Fields) > 0 {
		fields := make([]any, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = map[string]any{"name": f.Name, "type": f.Type}
		}
		obj["fields"] = fields
	}
	if len(t.Events) > 0 {
		events := make([]any, len(t.Events))
		for i, e := range t.Events {
			events[i] = map[string]any{"name": e.Name, "type": e.Type}
		}
		obj["events"] = events
	}
	if len(t.Properties) > 0 {
		props := make([]any, len(t.Properties))
		for i, p := range t.Properties {
			prop := map[string]any{"name": p.Name, "type": p.Type}
			if p.Getter != nil {
				prop["getter"] = p.Getter.Name
			}
			if p.Setter != nil {
				prop["setter"] = p.Setter.Name
			}
			props[i] = prop
		}
		obj["properties"] = props
	}
	if len(t.Methods) > 0 {
		methods := make([]any, len(t.Methods))
		for i, m := range t.Methods {
			method := map[string]any{"name": m.Name}
			if m.Returns != "" {
				method["returns"] = m.Returns
			}
			if len(m.Params) > 0 {
				params := make([]any, len(m.Params))
				for j, p := range m.Params {
					params[j] = map[string]any{"name": p.Name, "type": p.Type}
				}
				method["params"] = params
			}
			methods[i] = method
		}
		obj["methods"] = methods
	}
	return obj
}
