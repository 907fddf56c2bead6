package providers

import "errors"

var (
	// ErrMalformedResponse se usa cuando la respuesta no trae el campo esperado
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrUpstreamRejected se usa cuando el proveedor responde pero reporta un error propio
	ErrUpstreamRejected = errors.New("provider rejected request")
	// ErrUnexpectedStatus cubre respuestas no 2xx
	ErrUnexpectedStatus = errors.New("unexpected provider status")
	// ErrTransport cubre fallas de red y timeouts
	ErrTransport = errors.New("provider transport failure")
)
