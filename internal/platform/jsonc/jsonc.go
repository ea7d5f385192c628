// Package jsonc decodes JSON documents that may carry comments.
package jsonc

import (
	"encoding/json"
	"fmt"

	jsonc "github.com/muhammadmuzzammil1998/jsonc"
)

// Clean strips comments from JSONC input.
func Clean(data []byte) []byte {
	return jsonc.ToJSON(data)
}

// Decode cleans data and unmarshals it into dest.
func Decode(data []byte, dest any) error {
	if err := json.Unmarshal(Clean(data), dest); err != nil {
		return fmt.Errorf("parse jsonc: %w", err)
	}
	return nil
}
