package carapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Shape says how a 2xx body was framed.
type Shape int

const (
	// Enveloped bodies carry a "success" field and usually a "data" payload.
	Enveloped Shape = iota
	// Bare bodies are the payload itself (an object, or nothing at all).
	Bare
)

// Envelope is the decoded form of a successful response. For Bare shapes Data
// holds the whole body. Body is always the whole body.
type Envelope struct {
	Shape   Shape
	Success bool
	Data    json.RawMessage
	Error   string
	Message string
	Body    json.RawMessage
}

// HasData reports whether a non-null payload is present.
func (e Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// DataIsArray reports whether the payload is a JSON array.
func (e Envelope) DataIsArray() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && d[0] == '['
}

// BodyIsObject reports whether the whole body is a JSON object.
func (e Envelope) BodyIsObject() bool {
	b := bytes.TrimSpace(e.Body)
	return len(b) > 0 && b[0] == '{'
}

// RawResponse is a fully read HTTP response.
type RawResponse struct {
	Status int
	Body   []byte
}

// OK reports whether the status is in the 2xx range.
func (r *RawResponse) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

type wireEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message json.RawMessage `json:"message"`
	Details json.RawMessage `json:"details"`
	Errors  json.RawMessage `json:"errors"`
}

func (w wireEnvelope) errorText() string {
	return firstNonEmpty(messageText(w.Error), messageText(w.Message))
}

func (w wireEnvelope) fieldMessages() []string {
	return append(messageList(w.Details), messageList(w.Errors)...)
}

// messageText reads a message that may be a string or an object with a
// "message" field.
func messageText(raw json.RawMessage) string {
	if s := scalarString(raw); s != "" {
		return s
	}
	var obj struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return firstNonEmpty(obj.Message, obj.Msg)
	}
	return ""
}

func messageList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if msg := messageText(item); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// Interpret turns a raw response into an Envelope or a typed error.
func Interpret(raw *RawResponse) (Envelope, error) {
	body := bytes.TrimSpace(raw.Body)

	if !raw.OK() {
		message := fmt.Sprintf("HTTP %d", raw.Status)
		var fields []string
		var wire wireEnvelope
		if len(body) > 0 && json.Unmarshal(body, &wire) == nil {
			if msg := wire.errorText(); msg != "" {
				message = msg
			}
			fields = wire.fieldMessages()
		}
		return Envelope{}, statusError(raw.Status, message, fields)
	}

	if len(body) == 0 {
		return Envelope{Shape: Bare, Success: true}, nil
	}
	if !json.Valid(body) {
		return Envelope{}, &Error{
			Kind:    ErrMalformedJSON,
			Status:  raw.Status,
			Message: "invalid server response (malformed JSON)",
		}
	}

	switch body[0] {
	case '[':
		return Envelope{Shape: Enveloped, Success: true, Data: json.RawMessage(body), Body: json.RawMessage(body)}, nil
	case '{':
		var wire wireEnvelope
		if err := json.Unmarshal(body, &wire); err != nil || wire.Success == nil {
			return Envelope{Shape: Bare, Success: true, Data: json.RawMessage(body), Body: json.RawMessage(body)}, nil
		}
		if !*wire.Success {
			return Envelope{}, &Error{
				Kind:    ErrAPI,
				Status:  raw.Status,
				Message: firstNonEmpty(wire.errorText(), "the API reported a failure"),
			}
		}
		return Envelope{
			Shape:   Enveloped,
			Success: true,
			Data:    wire.Data,
			Error:   messageText(wire.Error),
			Message: messageText(wire.Message),
			Body:    json.RawMessage(body),
		}, nil
	default:
		return Envelope{Shape: Bare, Success: true, Data: json.RawMessage(body), Body: json.RawMessage(body)}, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
