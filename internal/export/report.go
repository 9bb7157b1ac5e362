package export

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/exorank/internal/model"
)

// WriteValidationJSON persists the machine-readable validation report.
func WriteValidationJSON(path string, report model.ValidationReport) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode validation report: %w", err)
	}
	return nil
}
