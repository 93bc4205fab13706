package client

import (
	"encoding/json"
)

// Response is a decoded 2xx API reply. The backend wraps payloads in an
// envelope {success, message, data}, but a few endpoints return the
// payload at the top level; Decode handles both shapes.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`

	raw []byte
}

// Raw returns the unparsed response body.
func (r *Response) Raw() []byte {
	return r.raw
}

// Decode unmarshals the payload into out: the envelope's data field when
// present, otherwise the whole body.
func (r *Response) Decode(out any) error {
	if out == nil {
		return nil
	}
	if len(r.Data) > 0 && string(r.Data) != "null" {
		return json.Unmarshal(r.Data, out)
	}
	return json.Unmarshal(r.raw, out)
}

func parseResponse(body []byte) *Response {
	resp := &Response{raw: body}
	// Envelope decode is best-effort; a non-envelope body still decodes
	// through Raw/Decode.
	_ = json.Unmarshal(body, resp)
	return resp
}
