package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrTransport       = errors.New("transport error")
	ErrMapping         = errors.New("mapping error")
	ErrMissingField    = errors.New("required field missing")
	ErrInvalidField    = errors.New("field has invalid type")
	ErrNotFound        = errors.New("not found")
	ErrCatalogNotReady = errors.New("catalog not built yet")
)

// TransportError reports that the raw records of a source could not be retrieved.
type TransportError struct {
	Supplier   string
	Source     string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	who := e.Source
	if e.Supplier != "" {
		who = fmt.Sprintf("%s (%s)", e.Supplier, e.Source)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", who, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", who, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MappingError reports a raw record that lacks a field the adapter requires.
// Index is the record's position in the supplier payload, -1 if unknown.
type MappingError struct {
	Supplier string
	Index    int
	Field    string
	Record   RawRecord
	Err      error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map %s record %d: field %q: %v: %s", e.Supplier, e.Index, e.Field, e.Err, e.excerpt())
}

func (e *MappingError) Unwrap() error { return e.Err }

func (e *MappingError) Is(target error) bool { return target == ErrMapping }

// excerpt renders the offending record, truncated to keep log lines bounded.
func (e *MappingError) excerpt() string {
	const max = 256
	b, err := json.Marshal(e.Record)
	if err != nil {
		return "<unprintable record>"
	}
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
