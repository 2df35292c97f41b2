package myhttp

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

// ReadBody reads at most maxBytes of the request body and fails when the body is larger.
func ReadBody(r *http.Request, maxBytes int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading request body: %s", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxBytes)
	}
	return body, nil
}

// WriteHTML renders into a buffer first so a template error never yields a half-written page.
func WriteHTML(w http.ResponseWriter, httpStatus int, tmpl *template.Template, data any) error {
	buf := bytes.Buffer{}
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return fmt.Errorf("error executing template %s: %s", tmpl.Name(), err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(httpStatus)
	_, err = buf.WriteTo(w)
	return err
}
