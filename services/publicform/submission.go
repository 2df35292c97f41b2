package publicform

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	formcodec "github.com/go-playground/form/v4"
)

// formContext travels as hidden inputs so a submission is tied to the organisation and event the form
// was rendered for.
type formContext struct {
	OrgID   string `form:"orgId"`
	EventID string `form:"eventId"`
}

func decodeContext(values url.Values) (formContext, error) {
	ctx := formContext{}
	err := formcodec.NewDecoder().Decode(&ctx, values)
	if err != nil {
		return formContext{}, fmt.Errorf("error decoding form context: %s", err)
	}
	return ctx, nil
}

// collectValues picks the value of every schema field from the posted form. Inputs not in the schema are dropped.
func collectValues(schema FormSchema, posted url.Values) map[string][]string {
	values := map[string][]string{}
	for _, field := range schema.Fields {
		submitted := posted[field.InputName()]
		if !field.Kind.MultiValued() && len(submitted) > 1 {
			submitted = submitted[:1]
		}
		values[field.ID] = submitted
	}
	return values
}

// validateRequired returns the error message per field id of every required field without a value.
func validateRequired(schema FormSchema, values map[string][]string) map[string]string {
	errs := map[string]string{}
	for _, field := range schema.Fields {
		if !field.Required {
			continue
		}
		if !hasValue(values[field.ID]) {
			errs[field.ID] = field.Label + " is required"
		}
	}
	return errs
}

func hasValue(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func newSubmission(schema FormSchema, ctx formContext, values map[string][]string) FormSubmission {
	formData := map[string]any{}
	for _, field := range schema.Fields {
		submitted := values[field.ID]
		if field.Kind.MultiValued() {
			list := []string{}
			list = append(list, submitted...)
			formData[field.ID] = list
			continue
		}
		value := ""
		if len(submitted) > 0 {
			value = submitted[0]
		}
		formData[field.ID] = value
	}

	return FormSubmission{
		Slug:     schema.Slug,
		OrgID:    firstNonEmpty(ctx.OrgID, schema.OrgID),
		EventID:  firstNonEmpty(ctx.EventID, schema.EventID),
		FormData: formData,
	}
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}

// fieldView is a field together with what the visitor entered and what was wrong with it.
type fieldView struct {
	FieldDescriptor
	Values []string
	Error  string
}

func (f fieldView) Value() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}

func (f fieldView) Selected(option string) bool {
	for _, v := range f.Values {
		if v == option {
			return true
		}
	}
	return false
}

func (f fieldView) Min() string {
	if f.Bounds == nil || f.Bounds.Min == nil {
		return ""
	}
	return strconv.FormatFloat(*f.Bounds.Min, 'f', -1, 64)
}

func (f fieldView) Max() string {
	if f.Bounds == nil || f.Bounds.Max == nil {
		return ""
	}
	return strconv.FormatFloat(*f.Bounds.Max, 'f', -1, 64)
}

type formPage struct {
	Schema  FormSchema
	OrgID   string
	EventID string
	Fields  []fieldView
	Message string
}

func newFormPage(schema FormSchema, ctx formContext, values map[string][]string, errs map[string]string, message string) formPage {
	page := formPage{
		Schema:  schema,
		OrgID:   schema.OrgID,
		EventID: schema.EventID,
		Fields:  make([]fieldView, 0, len(schema.Fields)),
		Message: message,
	}
	if ctx.OrgID != "" {
		page.OrgID = ctx.OrgID
	}
	if ctx.EventID != "" {
		page.EventID = ctx.EventID
	}
	for _, field := range schema.Fields {
		page.Fields = append(page.Fields, fieldView{
			FieldDescriptor: field,
			Values:          values[field.ID],
			Error:           errs[field.ID],
		})
	}
	return page
}
