package publicform

import (
	"fmt"
	"strings"
)

// FieldKind is the closed set of inputs a public form can contain.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldEmail
	FieldTel
	FieldNumber
	FieldTextarea
	FieldSelect
	FieldRadio
	FieldCheckbox
)

var fieldKindNames = map[string]FieldKind{
	"text":     FieldText,
	"email":    FieldEmail,
	"tel":      FieldTel,
	"number":   FieldNumber,
	"textarea": FieldTextarea,
	"select":   FieldSelect,
	"radio":    FieldRadio,
	"checkbox": FieldCheckbox,
}

// ParseFieldKind maps the schema type onto a kind. Unknown types render as a plain text input.
func ParseFieldKind(name string) FieldKind {
	kind, found := fieldKindNames[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return FieldText
	}
	return kind
}

func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldEmail:
		return "email"
	case FieldTel:
		return "tel"
	case FieldNumber:
		return "number"
	case FieldTextarea:
		return "textarea"
	case FieldSelect:
		return "select"
	case FieldRadio:
		return "radio"
	case FieldCheckbox:
		return "checkbox"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

func (k FieldKind) HasOptions() bool {
	return k == FieldSelect || k == FieldRadio || k == FieldCheckbox
}

// MultiValued kinds submit a list of values instead of a single one.
func (k FieldKind) MultiValued() bool {
	return k == FieldCheckbox
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type NumberBounds struct {
	Min *float64
	Max *float64
}

// FieldDescriptor describes one input. Options is only set for kinds with options, Bounds only for numbers.
type FieldDescriptor struct {
	ID          string
	Label       string
	Kind        FieldKind
	Required    bool
	Placeholder string
	Options     []Option
	Bounds      *NumberBounds
}

// InputName is the name of the html input carrying the value of this field.
func (f FieldDescriptor) InputName() string {
	return "field." + f.ID
}

type FormSchema struct {
	ID          string
	Slug        string
	Title       string
	Description string
	OrgID       string
	EventID     string
	Fields      []FieldDescriptor
}
