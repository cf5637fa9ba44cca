// Package schema validates raw content records against per-collection field
// rules and produces typed records.
//
// A Schema is plain data: an ordered list of Field rules. A Registry holds one
// Schema per collection name and interprets those rules in a single generic
// Validate routine. Schemas are immutable once registered, so a Registry can
// be shared by any number of goroutines.
//
// Validation is fail-fast: fields are checked in declared order and the first
// failing field aborts the record with one of MissingFieldError,
// TypeMismatchError or CoercionError.
package schema

// CollectionType distinguishes Markdown collections from pure data files.
type CollectionType string

const (
	// ContentCollection entries are Markdown files with front matter.
	ContentCollection CollectionType = "content"
	// DataCollection entries are YAML or JSON files.
	DataCollection CollectionType = "data"
)

// Type is the accepted input type of a field.
type Type int

const (
	TypeString Type = iota
	TypeNonEmptyString
	TypeStringOrDate
	TypeStringList
	TypeImage
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNonEmptyString:
		return "non-empty string"
	case TypeStringOrDate:
		return "string or date"
	case TypeStringList:
		return "list of strings"
	case TypeImage:
		return "image reference"
	default:
		return "unknown"
	}
}

// Coercion converts an accepted input value into the field's stored type.
type Coercion int

const (
	CoerceNone Coercion = iota
	// CoerceDate parses strings into time.Time; dates pass through.
	CoerceDate
	// CoerceImage hands string references to the registry's ImageResolver.
	CoerceImage
)

// Field is a single validation rule.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Coerce   Coercion
	// EmptyAbsent treats an empty string value as if the key were missing.
	EmptyAbsent bool
}

// Schema describes the shape of one collection's records.
type Schema struct {
	Name   string
	Type   CollectionType
	Fields []Field
}

// Required returns the names of all required fields in declared order.
func (s *Schema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

func (s *Schema) clone() *Schema {
	c := *s
	c.Fields = append([]Field(nil), s.Fields...)
	return &c
}
