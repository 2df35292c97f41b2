package publicform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MarcGrol/benefitcheckout/lib/myhttpclient"
)

var (
	ErrFormNotFound    = errors.New("form not found")
	ErrRelayFailed     = errors.New("form submission failed")
	ErrMissingRequired = errors.New("required field missing")
)

type schemaDTO struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OrgID       string     `json:"orgId"`
	EventID     string     `json:"eventId"`
	Fields      []fieldDTO `json:"fields"`
}

type fieldDTO struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Options     []Option `json:"options"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Placeholder string   `json:"placeholder"`
}

// CRMClient talks to the backend that owns forms and contacts.
type CRMClient struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewCRMClient(baseURL string, sender myhttpclient.HTTPSender) *CRMClient {
	return &CRMClient{
		baseURL: baseURL,
		sender:  sender,
	}
}

// FetchSchema loads the public schema of the form with the given slug. Every failure, including a
// schema that cannot be decoded, is reported as ErrFormNotFound.
func (c *CRMClient) FetchSchema(ctx context.Context, slug string) (FormSchema, error) {
	status, body, err := c.sender.Send(ctx, http.MethodGet, c.baseURL+"/forms/public/"+url.PathEscape(slug), nil)
	if err != nil {
		return FormSchema{}, fmt.Errorf("%w: %s", ErrFormNotFound, err)
	}
	if status != http.StatusOK {
		return FormSchema{}, fmt.Errorf("%w: crm responded with status %d", ErrFormNotFound, status)
	}

	dto := schemaDTO{}
	err = json.Unmarshal(body, &dto)
	if err != nil {
		return FormSchema{}, fmt.Errorf("%w: error decoding schema: %s", ErrFormNotFound, err)
	}

	return dto.toSchema(slug), nil
}

func (dto schemaDTO) toSchema(slug string) FormSchema {
	schema := FormSchema{
		ID:          dto.ID,
		Slug:        dto.Slug,
		Title:       dto.Title,
		Description: dto.Description,
		OrgID:       dto.OrgID,
		EventID:     dto.EventID,
		Fields:      make([]FieldDescriptor, 0, len(dto.Fields)),
	}
	if schema.Slug == "" {
		schema.Slug = slug
	}

	for _, f := range dto.Fields {
		field := FieldDescriptor{
			ID:          f.ID,
			Label:       f.Label,
			Kind:        ParseFieldKind(f.Type),
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}
		if field.Kind.HasOptions() {
			field.Options = f.Options
		}
		if field.Kind == FieldNumber && (f.Min != nil || f.Max != nil) {
			field.Bounds = &NumberBounds{Min: f.Min, Max: f.Max}
		}
		schema.Fields = append(schema.Fields, field)
	}
	return schema
}
