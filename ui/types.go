// Package ui draws the sandbox panels. Readouts are built from field and
// section descriptors so a panel is a table of getters, not layout code.
package ui

// WidgetType selects how a field is drawn.
type WidgetType int

const (
	WidgetText    WidgetType = iota // label: value
	WidgetBar                       // ratio in [0, 1], colored by threshold
	WidgetSection                   // sub-header
	WidgetSpacer
)

// FieldDescriptor is one line of a panel. Getter feeds Format and bars;
// TextGetter wins over Getter for text fields when both are set.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string
	Visible    func(any) bool // nil means always
	Getter     func(any) float32
	TextGetter func(any) string
}

// SectionDescriptor is a titled run of fields drawn from the same data.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// TextField builds a text line from a string getter.
func TextField(id, label string, get func(any) string) FieldDescriptor {
	return FieldDescriptor{ID: id, Label: label, Widget: WidgetText, TextGetter: get}
}

// NumberField builds a text line that formats a numeric getter.
func NumberField(id, label, format string, get func(any) float32) FieldDescriptor {
	return FieldDescriptor{ID: id, Label: label, Widget: WidgetText, Format: format, Getter: get}
}

// BarField builds a ratio bar.
func BarField(id, label string, get func(any) float32) FieldDescriptor {
	return FieldDescriptor{ID: id, Label: label, Widget: WidgetBar, Getter: get}
}

// When returns a copy of f shown only while visible reports true.
func (f FieldDescriptor) When(visible func(any) bool) FieldDescriptor {
	f.Visible = visible
	return f
}

// shown reports whether a descriptor with the given visibility check is
// drawn for data.
func shown(visible func(any) bool, data any) bool {
	return visible == nil || visible(data)
}
