package cache

import "errors"

var (
	// ErrKeyNotFound se retorna cuando la clave no existe
	ErrKeyNotFound = errors.New("cache: key not found")
	// ErrKeyExpired se retorna cuando la clave existía pero expiró
	ErrKeyExpired = errors.New("cache: key expired")
)

// IsMiss reports whether err means the key is simply absent.
func IsMiss(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrKeyExpired)
}
