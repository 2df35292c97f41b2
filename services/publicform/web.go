package publicform

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/myhttp"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/mymetrics"
	"github.com/MarcGrol/benefitcheckout/lib/myuuid"
)

const (
	missingFieldsMessage = "Please fill in all required fields"
	relayFailedMessage   = "Failed to submit form. Please try again."
	defaultFormName      = "the form"
)

//go:embed templates
var templateFolder embed.FS
var (
	controlTemplates     *template.Template
	formPageTemplate     *template.Template
	notFoundPageTemplate *template.Template
	successPageTemplate  *template.Template
)

func init() {
	controlTemplates = template.Must(template.ParseFS(templateFolder, "templates/controls.html"))
	formPageTemplate = template.Must(template.New("form.html").Funcs(template.FuncMap{"control": renderControl}).ParseFS(templateFolder, "templates/form.html"))
	notFoundPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/notfound.html"))
	successPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/success.html"))
}

// controlTemplateName selects the input markup for every kind of field.
func controlTemplateName(kind FieldKind) (string, error) {
	switch kind {
	case FieldText, FieldEmail, FieldTel, FieldNumber:
		return "control-input", nil
	case FieldTextarea:
		return "control-textarea", nil
	case FieldSelect:
		return "control-select", nil
	case FieldRadio:
		return "control-radio", nil
	case FieldCheckbox:
		return "control-checkbox", nil
	default:
		return "", fmt.Errorf("no control for field kind %s", kind)
	}
}

func renderControl(field fieldView) (template.HTML, error) {
	name, err := controlTemplateName(field.Kind)
	if err != nil {
		return "", err
	}

	buf := bytes.Buffer{}
	err = controlTemplates.ExecuteTemplate(&buf, name, field)
	if err != nil {
		return "", fmt.Errorf("error rendering field %s: %s", field.ID, err)
	}
	return template.HTML(buf.String()), nil
}

type webService struct {
	logger mylog.Logger
	crm    *CRMClient
	uuider myuuid.UUIDer
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(crm *CRMClient, uuider myuuid.UUIDer) *webService {
	return &webService{
		logger: mylog.New("publicform"),
		crm:    crm,
		uuider: uuider,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/forms/{slug}", s.formPage()).Methods("GET")
	router.HandleFunc("/forms/{slug}", s.submitForm()).Methods("POST")
	router.HandleFunc("/forms/{slug}/success", s.successPage()).Methods("GET")

	return nil
}

func (s *webService) formPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		slug := mux.Vars(r)["slug"]

		schema, err := s.crm.FetchSchema(c, slug)
		if err != nil {
			s.notFound(c, w, slug, err)
			return
		}

		s.render(c, w, http.StatusOK, formPageTemplate, newFormPage(schema, formContext{}, nil, nil, ""))
	}
}

// submitForm validates the posted values against a freshly fetched schema and relays them to the crm once.
func (s *webService) submitForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		slug := mux.Vars(r)["slug"]
		// correlates all log lines of one submission
		submissionUID := s.uuider.Create()

		schema, err := s.crm.FetchSchema(c, slug)
		if err != nil {
			s.notFound(c, w, submissionUID, err)
			return
		}

		err = r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		ctx, err := decodeContext(r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		values := collectValues(schema, r.PostForm)

		fieldErrors := validateRequired(schema, values)
		if len(fieldErrors) > 0 {
			mymetrics.FormSubmissions.WithLabelValues("invalid").Inc()
			err = myerrors.NewUnprocessableError(fmt.Errorf("%w: %d field(s) of form %s", ErrMissingRequired, len(fieldErrors), slug))
			s.renderFailure(c, w, submissionUID, err, formPageTemplate, newFormPage(schema, ctx, values, fieldErrors, missingFieldsMessage))
			return
		}

		err = s.crm.Submit(c, newSubmission(schema, ctx, values))
		if err != nil {
			mymetrics.FormSubmissions.WithLabelValues("failed").Inc()
			err = myerrors.NewBadGatewayError(fmt.Errorf("error submitting form %s: %w", slug, err))
			s.renderFailure(c, w, submissionUID, err, formPageTemplate, newFormPage(schema, ctx, values, nil, relayFailedMessage))
			return
		}

		mymetrics.FormSubmissions.WithLabelValues("submitted").Inc()
		s.logger.Log(c, submissionUID, mylog.SeverityInfo, "Form %s submitted", slug)

		http.Redirect(w, r, fmt.Sprintf("/forms/%s/success?form=%s", url.PathEscape(slug), url.QueryEscape(schema.Title)), http.StatusSeeOther)
	}
}

func (s *webService) successPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		formName := r.URL.Query().Get("form")
		if formName == "" {
			formName = defaultFormName
		}

		s.render(c, w, http.StatusOK, successPageTemplate, struct{ FormName string }{FormName: formName})
	}
}

func (s *webService) notFound(c context.Context, w http.ResponseWriter, traceLabel string, err error) {
	s.renderFailure(c, w, traceLabel, myerrors.NewNotFoundError(fmt.Errorf("error loading form: %w", err)), notFoundPageTemplate, nil)
}

// renderFailure shows an html page with the http-status carried by err.
func (s *webService) renderFailure(c context.Context, w http.ResponseWriter, traceLabel string, err error, tmpl *template.Template, data any) {
	status := myerrors.GetHTTPStatus(err)
	severity := mylog.SeverityWarn
	if status >= http.StatusInternalServerError {
		severity = mylog.SeverityError
	}
	s.logger.Log(c, traceLabel, severity, "Error response: http-status:%d, error-msg:%s", status, err)
	s.render(c, w, status, tmpl, data)
}

func (s *webService) render(c context.Context, w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	err := myhttp.WriteHTML(w, status, tmpl, data)
	if err != nil {
		myhttp.NewWriter(s.logger).WriteError(c, w, 3, myerrors.NewInternalError(err))
	}
}
