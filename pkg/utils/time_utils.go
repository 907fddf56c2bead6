package utils

import (
	"time"
)

// ISOMillisLayout es ISO-8601 con milisegundos, el formato de timestamps en las respuestas
const ISOMillisLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO formats t in UTC with millisecond precision (e.g. 2025-01-15T10:30:00.000Z)
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillisLayout)
}

// ParseISO parses a timestamp produced by FormatISO, or any RFC3339 timestamp
func ParseISO(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
