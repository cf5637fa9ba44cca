package schema

import (
	"fmt"
	"sort"
	"time"
)

// Registry maps collection names to schemas and validates raw records.
type Registry struct {
	schemas  map[string]*Schema
	resolver ImageResolver
}

// NewRegistry creates a registry holding the given schemas. The resolver is
// used for image fields and may be nil if no schema needs images. A later
// schema with the same name replaces an earlier one.
func NewRegistry(resolver ImageResolver, schemas ...*Schema) *Registry {
	r := &Registry{
		schemas:  make(map[string]*Schema, len(schemas)),
		resolver: resolver,
	}
	for _, s := range schemas {
		r.schemas[s.Name] = s.clone()
	}
	return r
}

// NewDefaultRegistry creates a registry with the blog, portfolio and
// experiments collections.
func NewDefaultRegistry(resolver ImageResolver) *Registry {
	return NewRegistry(resolver, DefaultSchemas()...)
}

// WithResolver returns a registry sharing r's schemas but resolving images
// through resolver.
func (r *Registry) WithResolver(resolver ImageResolver) *Registry {
	return &Registry{schemas: r.schemas, resolver: resolver}
}

// Schema returns a copy of the schema registered under name.
func (r *Registry) Schema(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// Collections returns the registered collection names, sorted.
func (r *Registry) Collections() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks record against the named collection's schema and returns
// the typed record. Input keys the schema does not declare are dropped.
func (r *Registry) Validate(collection string, record map[string]any) (*Record, error) {
	s, ok := r.schemas[collection]
	if !ok {
		return nil, &UnknownCollectionError{Collection: collection}
	}

	out := &Record{
		collection: s.Name,
		fields:     make([]string, 0, len(s.Fields)),
		values:     make(map[string]any, len(s.Fields)),
	}
	for _, f := range s.Fields {
		raw, present := record[f.Name]
		if str, ok := raw.(string); ok && str == "" && f.EmptyAbsent {
			present = false
		}
		if !present {
			if f.Required {
				return nil, &MissingFieldError{Collection: s.Name, Field: f.Name}
			}
			continue
		}

		v, err := checkType(s.Name, f, raw)
		if err != nil {
			return nil, err
		}
		v, err = r.coerce(s.Name, f, v)
		if err != nil {
			return nil, err
		}

		out.fields = append(out.fields, f.Name)
		out.values[f.Name] = v
	}
	return out, nil
}

// checkType returns v in its accepted input form, or a TypeMismatchError.
func checkType(collection string, f Field, v any) (any, error) {
	mismatch := func(field, actual string) error {
		return &TypeMismatchError{Collection: collection, Field: field, Expected: f.Type.String(), Actual: actual}
	}

	switch f.Type {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeNonEmptyString:
		if s, ok := v.(string); ok {
			if s == "" {
				return nil, mismatch(f.Name, "empty string")
			}
			return s, nil
		}
	case TypeStringOrDate:
		if in, ok := toDateInput(v); ok {
			return in, nil
		}
	case TypeStringList:
		switch list := v.(type) {
		case []string:
			return append(make([]string, 0, len(list)), list...), nil
		case []any:
			out := make([]string, 0, len(list))
			for i, elem := range list {
				s, ok := elem.(string)
				if !ok {
					return nil, &TypeMismatchError{
						Collection: collection,
						Field:      fmt.Sprintf("%s[%d]", f.Name, i),
						Expected:   "string",
						Actual:     describe(elem),
					}
				}
				out = append(out, s)
			}
			return out, nil
		}
	case TypeImage:
		switch img := v.(type) {
		case string:
			return img, nil
		case ImageRef:
			if img != nil {
				return img, nil
			}
		}
	}
	return nil, mismatch(f.Name, describe(v))
}

func (r *Registry) coerce(collection string, f Field, v any) (any, error) {
	switch f.Coerce {
	case CoerceDate:
		var in dateInput
		switch t := v.(type) {
		case dateInput:
			in = t
		case string:
			in = dateInput{text: t}
		}
		date, err := in.resolve()
		if err != nil {
			return nil, &CoercionError{Collection: collection, Field: f.Name, Reason: err.Error(), Err: err}
		}
		return date, nil

	case CoerceImage:
		if img, ok := v.(ImageRef); ok {
			return img, nil
		}
		ref, _ := v.(string)
		if r.resolver == nil {
			return nil, &CoercionError{Collection: collection, Field: f.Name, Reason: "no image resolver configured"}
		}
		img, err := r.resolver.ResolveImage(ref)
		if err != nil {
			return nil, &CoercionError{Collection: collection, Field: f.Name, Reason: err.Error(), Err: err}
		}
		if img == nil {
			return nil, &CoercionError{Collection: collection, Field: f.Name, Reason: fmt.Sprintf("image %q resolved to nothing", ref)}
		}
		return img, nil
	}

	if in, ok := v.(dateInput); ok {
		// A string-or-date field without coercion keeps its input form.
		if in.isDate {
			return in.date, nil
		}
		return in.text, nil
	}
	return v, nil
}

// describe names the dynamic type of a raw value for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case time.Time, *time.Time:
		return "date"
	case []any, []string:
		return "list"
	case map[string]any, map[any]any:
		return "map"
	case ImageRef:
		return "image reference"
	default:
		return fmt.Sprintf("%T", v)
	}
}
