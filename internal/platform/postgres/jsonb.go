package postgres

import (
	"encoding/json"
	"fmt"
)

// jsonbValue marshals v for a JSONB column. nil-able slices and maps
// marshal to SQL NULL when nil so empty and absent stay distinguishable.
func jsonbValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSONB value: %w", err)
	}
	return data, nil
}

// scanJSONB unmarshals a JSONB column into dst. NULL leaves dst at its
// zero value.
func scanJSONB(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSONB column: %w", err)
	}
	return nil
}
