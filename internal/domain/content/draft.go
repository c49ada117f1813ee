package content

import (
	"fmt"
	"strings"

	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
)

// Mode tells whether a draft adds a new record or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// ErrUnknownField is returned when a draft is given a field its schema
// does not declare.
var ErrUnknownField = shared.NewDomainError("UNKNOWN_FIELD", "Unknown field")

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that blocks submission.
type ValidationError struct {
	Missing []string
	Invalid []FieldError
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	for _, fe := range e.Invalid {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, shared.ErrValidationFailed) hold.
func (e *ValidationError) Is(target error) bool {
	return target == shared.ErrValidationFailed
}

// Draft is the in-progress copy of one record while it is being added or
// edited. Every value is text, exactly as it would sit in a form input.
type Draft struct {
	schema *Schema
	mode   Mode
	id     string
	values map[string]string
}

// NewDraft starts an add-mode draft with every field empty.
func NewDraft(schema *Schema) *Draft {
	d := &Draft{schema: schema, mode: ModeCreate, values: make(map[string]string, len(schema.Fields))}
	for _, f := range schema.Fields {
		d.values[f.Name] = ""
	}
	return d
}

// EditDraft starts an edit-mode draft seeded from a stored record's fields.
// Fields the schema does not declare are ignored; list values are joined
// back into their comma separated form.
func EditDraft(schema *Schema, id string, fields document.Fields) *Draft {
	d := NewDraft(schema)
	d.mode = ModeUpdate
	d.id = id
	for _, f := range schema.Fields {
		d.values[f.Name] = formValue(fields[f.Name])
	}
	return d
}

func formValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case Technologies:
		return val.String()
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// Schema returns the schema the draft edits.
func (d *Draft) Schema() *Schema { return d.schema }

// Mode returns whether the draft adds or edits.
func (d *Draft) Mode() Mode { return d.mode }

// ID returns the identity of the edited record, empty in add mode.
func (d *Draft) ID() string { return d.id }

// Get returns the current value of a field.
func (d *Draft) Get(field string) string { return d.values[field] }

// Set replaces one field and leaves every other field untouched.
func (d *Draft) Set(field, value string) error {
	if _, ok := d.schema.Field(field); !ok {
		return shared.NewDomainError(ErrUnknownField.Code,
			fmt.Sprintf("%s has no field %q", d.schema.Collection, field))
	}
	d.values[field] = value
	return nil
}

// Apply sets several fields at once. If any name is unknown nothing is
// changed.
func (d *Draft) Apply(values map[string]string) error {
	for name := range values {
		if _, ok := d.schema.Field(name); !ok {
			return shared.NewDomainError(ErrUnknownField.Code,
				fmt.Sprintf("%s has no field %q", d.schema.Collection, name))
		}
	}
	for name, v := range values {
		d.values[name] = v
	}
	return nil
}

// Validate checks required fields and per-field rules. It returns a
// *ValidationError naming every failing field, or nil.
func (d *Draft) Validate() error {
	verr := &ValidationError{}
	for _, f := range d.schema.Fields {
		v := strings.TrimSpace(d.values[f.Name])
		if v == "" {
			if f.Required || (f.RequiredOnCreate && d.mode == ModeCreate) {
				verr.Missing = append(verr.Missing, f.Name)
			}
			continue
		}
		if f.Check != nil {
			if err := f.Check(d.values[f.Name]); err != nil {
				verr.Invalid = append(verr.Invalid, FieldError{Field: f.Name, Message: err.Error()})
			}
		}
	}
	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}

// Fields converts the draft into document fields ready to be written.
func (d *Draft) Fields() document.Fields {
	out := make(document.Fields, len(d.schema.Fields))
	for _, f := range d.schema.Fields {
		v := d.values[f.Name]
		switch f.Kind {
		case KindList:
			out[f.Name] = []string(ParseTechnologies(v))
		default:
			out[f.Name] = v
		}
	}
	return out
}
