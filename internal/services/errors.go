package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks network or HTTP-level failures talking to the
	// translation backend. Fatal to the current document, not the batch.
	ErrTransport = errors.New("backend transport error")
	// ErrExhausted marks a translation that burned its whole retry budget on
	// sentinel-corrupted responses without producing a usable result.
	ErrExhausted = errors.New("translation retries exhausted")
	// ErrMalformedInput marks input JSON missing the expected shape.
	ErrMalformedInput = errors.New("malformed input")
	// ErrIO marks failures reading inputs or writing outputs.
	ErrIO = errors.New("io failure")
	// ErrConfiguration marks unusable settings discovered at run time.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures in spawned helper binaries.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification via errors.Is.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// AbortsBatch reports whether an error should stop an in-progress batch.
// Per-document and per-entry failures never do; only configuration problems
// indicate the whole run is futile.
func AbortsBatch(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
