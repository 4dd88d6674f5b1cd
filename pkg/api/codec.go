package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals Connect messages with encoding/json. Registering it
// under the name "json" makes Connect serve plain-struct messages for
// requests with a Content-Type of application/json, which is the only
// schema this API carries.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// withDefaultOptions prepends the JSON codec to any caller-supplied options.
func withDefaultOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// withDefaultHandlerOptions prepends the JSON codec to handler options.
func withDefaultHandlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}
