package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ResponseType tells the pipeline how to treat the response payload
type ResponseType int

const (
	// ResponseJSON expects an {code, message, data} envelope
	ResponseJSON ResponseType = iota
	// ResponseBinary expects a raw payload (file download, preview)
	ResponseBinary
)

// Request describes one API call. Domain modules build it; the client never mutates it.
type Request struct {
	Method       string
	Path         string
	Query        url.Values
	Body         any
	Form         *MultipartForm
	ResponseType ResponseType
	// Timeout overrides the deployment's default timeout when non-zero
	Timeout time.Duration
	Header  http.Header
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// File is an upload part of a multipart request
type File struct {
	Name    string
	Content io.Reader
}

// MultipartForm is an ordered multipart/form-data body. Repeated names are kept,
// which is how list fields such as tags are sent.
type MultipartForm struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field string
	file  File
}

// NewMultipartForm creates an empty form
func NewMultipartForm() *MultipartForm {
	return &MultipartForm{}
}

// Add appends a text field
func (f *MultipartForm) Add(name, value string) *MultipartForm {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddIf appends a text field only when value is non-empty
func (f *MultipartForm) AddIf(name, value string) *MultipartForm {
	if value != "" {
		f.Add(name, value)
	}
	return f
}

// AddAll appends one field per value under the same name
func (f *MultipartForm) AddAll(name string, values []string) *MultipartForm {
	for _, v := range values {
		f.Add(name, v)
	}
	return f
}

// AddFile appends a file part; a nil file or nil content is skipped
func (f *MultipartForm) AddFile(field string, file *File) *MultipartForm {
	if file == nil || file.Content == nil {
		return f
	}
	f.files = append(f.files, formFile{field: field, file: *file})
	return f
}

// Values returns the text values recorded for name, in order
func (f *MultipartForm) Values(name string) []string {
	var out []string
	for _, field := range f.fields {
		if field.name == name {
			out = append(out, field.value)
		}
	}
	return out
}

// FileNames returns the file name attached under field, in order
func (f *MultipartForm) FileNames(field string) []string {
	var out []string
	for _, ff := range f.files {
		if ff.field == field {
			out = append(out, ff.file.Name)
		}
	}
	return out
}

func (f *MultipartForm) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field.name, err)
		}
	}
	for _, ff := range f.files {
		part, err := w.CreateFormFile(ff.field, ff.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", ff.field, err)
		}
		if _, err := io.Copy(part, ff.file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to copy form file %s: %w", ff.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// Query builds url.Values, skipping zero values the way optional parameters are omitted
type Query struct {
	values url.Values
}

// NewQuery creates an empty query builder
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// String sets key when value is non-empty
func (q *Query) String(key, value string) *Query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

// Int sets key when value is non-zero
func (q *Query) Int(key string, value int) *Query {
	if value != 0 {
		q.values.Set(key, strconv.Itoa(value))
	}
	return q
}

// Values returns the built query, or nil when nothing was set
func (q *Query) Values() url.Values {
	if len(q.values) == 0 {
		return nil
	}
	return q.values
}
