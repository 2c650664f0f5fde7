// Package handler registers the diagram edit operations with the default
// registry. Import it for its side effects.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingParam is returned when a required parameter is absent or empty.
var ErrMissingParam = errors.New("missing parameter")

// decode unmarshals params into v. Empty params decode to the zero value.
func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}

func requireParam(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return nil
}
