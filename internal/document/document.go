// Package document models the unit of indexing: a caller-identified, ordered
// set of named fields.
package document

import (
	"fmt"
	"strings"

	apperrors "github.com/doquery/doquery/pkg/errors"
)

// Field is one named value of a Document.
type Field struct {
	Name  string
	Value Value
}

// Document is a named bag of fields identified by a unique ID. Field names are
// case-insensitive; iteration follows first-insertion order.
type Document struct {
	id     string
	fields []Field
	byName map[string]int
}

// New creates an empty document.
func New(id string) (*Document, error) {
	if id == "" {
		return nil, apperrors.InvalidArgument("document.New", "document id must not be empty")
	}
	return &Document{
		id:     id,
		byName: make(map[string]int),
	}, nil
}

// MustNew is New plus AddField for each field. It panics on invalid input and
// is meant for fixtures and demo data.
func MustNew(id string, fields ...Field) *Document {
	doc, err := New(id)
	if err != nil {
		panic(err)
	}
	for _, f := range fields {
		if err := doc.AddField(f.Name, f.Value); err != nil {
			panic(err)
		}
	}
	return doc
}

// F builds a Field from any Go value, see ValueOf.
func F(name string, value any) Field {
	return Field{Name: name, Value: ValueOf(value)}
}

func (d *Document) ID() string {
	return d.id
}

// AddField adds or replaces a field. Replacing keeps the field's original
// position and the casing it was first added with.
func (d *Document) AddField(name string, value Value) error {
	if name == "" {
		return apperrors.InvalidArgument("document.AddField", "field name must not be empty")
	}
	if value == nil {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document.AddField", "field %q has no value", name)
	}
	key := strings.ToLower(name)
	if i, ok := d.byName[key]; ok {
		d.fields[i].Value = value
		return nil
	}
	if d.byName == nil {
		d.byName = make(map[string]int)
	}
	d.byName[key] = len(d.fields)
	d.fields = append(d.fields, Field{Name: name, Value: value})
	return nil
}

// Field returns the value stored under name, ignoring case.
func (d *Document) Field(name string) (Value, bool) {
	i, ok := d.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return d.fields[i].Value, true
}

// FieldString returns the field's text or "" when absent.
func (d *Document) FieldString(name string) string {
	v, ok := d.Field(name)
	if !ok {
		return ""
	}
	return v.String()
}

// Fields returns a copy of the fields in insertion order.
func (d *Document) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

func (d *Document) Len() int {
	return len(d.fields)
}

func (d *Document) String() string {
	return fmt.Sprintf("Document[%s] with %d fields", d.id, len(d.fields))
}
