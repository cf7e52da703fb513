package apiclient

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

// SuccessCode is the only envelope code that means success
const SuccessCode = 200

// Envelope is the {code, message, data} wrapper of every JSON response
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether the envelope signals success
func (e *Envelope) OK() bool {
	return e != nil && e.Code == SuccessCode
}

// Decode unmarshals the envelope's data into T. Missing or null data yields T's zero value.
func Decode[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return out, nil
}

// Response is what the pipeline resolves with. Structured calls carry Envelope;
// binary calls carry the raw Body untouched.
type Response struct {
	StatusCode int
	Header     http.Header
	Envelope   *Envelope
	Body       []byte
}

// ContentType returns the response media type without parameters
func (r *Response) ContentType() string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

// Filename returns the file name from Content-Disposition, if any
func (r *Response) Filename() string {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}
