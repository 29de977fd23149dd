package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces Connect's protojson codec, so both the Connect
// protocol's application/json and plain curl requests are accepted.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// WithJSON configures a handler or client to exchange the plain Go messages
// of this package as JSON.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
