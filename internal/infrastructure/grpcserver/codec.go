package grpcserver

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName es el content-subtype: application/grpc+json
const codecName = "json"

// jsonCodec serializa los mensajes con los mismos DTOs snake_case de la API REST
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
