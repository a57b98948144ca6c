// Package frame defines the columnar record groups events are read from.
//
// A Frame is one independent group of fields sharing row indices. Each
// field exposes raw values by row, an optional display function and an
// optional link resolver.
package frame

import (
	"fmt"
	"strings"
	"time"
)

// DisplayValue is the formatted form of a raw field value.
type DisplayValue struct {
	Text  string
	Color string
}

// DisplayFunc formats a raw value for presentation.
type DisplayFunc func(raw any) DisplayValue

// Link is a navigation action attached to a row.
type Link struct {
	Title   string
	Href    string
	Target  string
	OnClick func()
}

// LinksFunc resolves the links for a row index.
type LinksFunc func(row int) []Link

// Field is a named column.
type Field struct {
	Name    string
	Values  []any
	Display DisplayFunc // optional
	Links   LinksFunc   // optional
}

// Len returns the number of rows in the field.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Values)
}

// Value returns the raw value at row, or nil when out of range.
func (f *Field) Value(row int) any {
	if f == nil || row < 0 || row >= len(f.Values) {
		return nil
	}
	return f.Values[row]
}

// Text returns the display text for row when the field has a display
// function, otherwise the raw value rendered as a string.
func (f *Field) Text(row int) string {
	raw := f.Value(row)
	if f != nil && f.Display != nil {
		return f.Display(raw).Text
	}
	return Stringify(raw)
}

// RowLinks returns the links for row, or nil when none are configured.
func (f *Field) RowLinks(row int) []Link {
	if f == nil || f.Links == nil {
		return nil
	}
	return f.Links(row)
}

// Frame groups the calendar-relevant fields of one record group.
// Any field may be nil; Description and Labels keep source order.
type Frame struct {
	Name        string
	Text        *Field
	Start       *Field
	End         *Field
	Color       *Field
	Location    *Field
	Description []*Field
	Labels      []*Field
}

// Rows returns the row count, taken from the text field.
func (f Frame) Rows() int {
	return f.Text.Len()
}

// Len returns the longest field length in the frame.
func (f Frame) Len() int {
	n := 0
	for _, field := range f.Fields() {
		n = max(n, field.Len())
	}
	return n
}

// Fields returns every non-nil field: the named roles first, then
// descriptions and labels in source order.
func (f Frame) Fields() []*Field {
	var out []*Field
	for _, field := range []*Field{f.Text, f.Start, f.End, f.Color, f.Location} {
		if field != nil {
			out = append(out, field)
		}
	}
	for _, field := range f.Description {
		if field != nil {
			out = append(out, field)
		}
	}
	for _, field := range f.Labels {
		if field != nil {
			out = append(out, field)
		}
	}
	return out
}

// Usable reports whether the frame has both a text and a start field.
func (f Frame) Usable() bool {
	return f.Text != nil && f.Start != nil
}

// DescriptionField returns the description field called name, or nil.
func (f Frame) DescriptionField(name string) *Field {
	for _, field := range f.Description {
		if field != nil && field.Name == name {
			return field
		}
	}
	return nil
}

// IsEmpty reports whether a raw value counts as absent.
func IsEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	default:
		return false
	}
}

// Stringify renders a raw value as text.
func Stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// IsFieldVisible reports whether field is among the visible fields.
func IsFieldVisible(field string, visible []string) bool {
	for _, v := range visible {
		if v == field {
			return true
		}
	}
	return false
}
