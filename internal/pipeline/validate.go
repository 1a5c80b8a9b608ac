package pipeline

import (
	"log"

	"post-stats-pipeline/internal/mapping"
)

// CheckRequiredColumns gates an import on the required columns. With force
// the missing columns are only logged and the import goes on.
func CheckRequiredColumns(headers []string, force bool) (mapping.ValidationResult, error) {
	result := mapping.ValidateRequiredColumns(headers)
	if result.IsValid {
		log.Printf("🔍 Validation: all %d required columns present", len(mapping.DefaultColumns()))
		return result, nil
	}

	for i, m := range result.MissingColumns {
		if i >= 5 {
			log.Printf("❌ Validation: ... and %d more", len(result.MissingColumns)-i)
			break
		}
		log.Printf("❌ Validation: missing column %q (%s)", m.External, m.DisplayName)
	}

	if force {
		log.Printf("⚠️ Validation: continuing without %d required columns", len(result.MissingColumns))
		return result, nil
	}
	return result, result.Err()
}
