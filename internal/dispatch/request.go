package dispatch

import (
	"encoding/json"
	"fmt"
)

// Tag carries optional caller-supplied metadata attached to a request.
// The datapointer identifies which piece of UI state the eventual response
// should update; callback and extension name optional host-side hooks.
// The queue never inspects any of these fields.
type Tag struct {
	Datapointer string `json:"datapointer"`
	Callback    string `json:"callback,omitempty"`
	Extension   string `json:"extension,omitempty"`
}

// Request is the unit of work the queue buffers: a command name, a set of
// opaque named parameters, and an optional tag. Requests are immutable once
// enqueued; the queue never mutates a stored request.
//
// On the wire a request is a flat JSON object: "_cmd" carries the command
// name, "_tag" (optional) carries the tag, and every other top-level key is
// treated as an opaque parameter and preserved verbatim. Key order is not
// semantically significant.
type Request struct {
	Cmd    string
	Params map[string]json.RawMessage
	Tag    *Tag
}

// DecodeError reports a structurally invalid request payload: a missing or
// mistyped "_cmd" field, a malformed parameter map, or a document that is
// not a JSON object. Pushes that fail decoding are rejected atomically and
// never touch a buffer.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode request: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode request: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseRequest decodes an inbound submission payload into a Request.
// The payload must be a JSON object with a string-valued "_cmd" key; all
// other keys except "_tag" become opaque parameters in decoder order.
func ParseRequest(payload []byte) (Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return Request{}, &DecodeError{Reason: "payload is not a JSON object", Err: err}
	}

	rawCmd, ok := fields["_cmd"]
	if !ok {
		return Request{}, &DecodeError{Reason: "missing required _cmd field"}
	}
	var cmd string
	if err := json.Unmarshal(rawCmd, &cmd); err != nil {
		return Request{}, &DecodeError{Reason: "_cmd must be a string", Err: err}
	}
	if cmd == "" {
		return Request{}, &DecodeError{Reason: "_cmd must not be empty"}
	}
	delete(fields, "_cmd")

	var tag *Tag
	if rawTag, ok := fields["_tag"]; ok {
		tag = &Tag{}
		if err := json.Unmarshal(rawTag, tag); err != nil {
			return Request{}, &DecodeError{Reason: "_tag is malformed", Err: err}
		}
		delete(fields, "_tag")
	}

	return Request{Cmd: cmd, Params: fields, Tag: tag}, nil
}

// MarshalJSON restores the flat wire shape: "_cmd", the opaque parameters,
// and "_tag" when present, all at the top level of one object.
func (r Request) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(r.Params)+2)
	for key, value := range r.Params {
		fields[key] = value
	}

	rawCmd, err := json.Marshal(r.Cmd)
	if err != nil {
		return nil, err
	}
	fields["_cmd"] = rawCmd

	if r.Tag != nil {
		rawTag, err := json.Marshal(r.Tag)
		if err != nil {
			return nil, err
		}
		fields["_tag"] = rawTag
	}

	return json.Marshal(fields)
}

// UnmarshalJSON decodes the flat wire shape via ParseRequest so both entry
// points share one validation path.
func (r *Request) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRequest(data)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Param unmarshals the named parameter into out. Returns false when the
// parameter is absent; decoding failures of present parameters are errors.
func (r Request) Param(name string, out any) (bool, error) {
	raw, ok := r.Params[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("param %q: %w", name, err)
	}
	return true, nil
}
