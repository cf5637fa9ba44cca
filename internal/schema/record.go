package schema

import (
	"time"
)

// Record is a validated, typed record. It holds exactly the schema fields
// that were present in the input, in declared order, with coerced values.
type Record struct {
	collection string
	fields     []string
	values     map[string]any
}

// Collection returns the name of the collection the record was validated against.
func (r *Record) Collection() string {
	return r.collection
}

// Fields returns the names of the present fields in declared order.
func (r *Record) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Has reports whether the field was present in the input.
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Get returns the final value of a field.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// String returns a string field, or "" if absent.
func (r *Record) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

// OptionalString returns a string field as an Optional.
func (r *Record) OptionalString(name string) Optional[string] {
	if s, ok := r.values[name].(string); ok {
		return Some(s)
	}
	return None[string]()
}

// Date returns a date field, or the zero time if absent.
func (r *Record) Date(name string) time.Time {
	t, _ := r.values[name].(time.Time)
	return t
}

// OptionalDate returns a date field as an Optional.
func (r *Record) OptionalDate(name string) Optional[time.Time] {
	if t, ok := r.values[name].(time.Time); ok {
		return Some(t)
	}
	return None[time.Time]()
}

// Strings returns a copy of a string list field.
func (r *Record) Strings(name string) []string {
	list, ok := r.values[name].([]string)
	if !ok {
		return nil
	}
	return append(make([]string, 0, len(list)), list...)
}

// Image returns an image field, or nil if absent.
func (r *Record) Image(name string) ImageRef {
	img, _ := r.values[name].(ImageRef)
	return img
}

// Raw returns the record as a plain map of its final values. Validate accepts
// it again unless updatedDate is set, since that field only takes strings.
func (r *Record) Raw() map[string]any {
	raw := make(map[string]any, len(r.values))
	for k, v := range r.values {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		raw[k] = v
	}
	return raw
}
