package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
)

// RunCompareTemplates prints a side-by-side view of at least two predefined
// role templates: for every capability granted by any of them, the level each
// template holds. A dash marks a template that does not grant the capability.
func RunCompareTemplates(
	templateUseCase authzUseCase.TemplateUseCase,
	writer io.Writer,
	templateKeysCSV string,
	format string,
) error {
	templateKeys := splitKeys(templateKeysCSV)
	if len(templateKeys) < 2 {
		return fmt.Errorf("at least two template keys are required")
	}

	comparison, err := templateUseCase.Compare(templateKeys)
	if err != nil {
		return fmt.Errorf("failed to compare templates: %w", err)
	}

	// Output result based on format
	if format == "json" {
		result := make(map[string]map[string]string, len(comparison.Levels))
		for capabilityKey, levels := range comparison.Levels {
			entry := make(map[string]string, len(levels))
			for templateKey, level := range levels {
				entry[templateKey] = string(level)
			}
			result[capabilityKey] = entry
		}

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return nil
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
		return nil
	}

	_, _ = fmt.Fprintf(writer, "%-24s", "capability")
	for _, templateKey := range comparison.TemplateKeys {
		_, _ = fmt.Fprintf(writer, " %-20s", templateKey)
	}
	_, _ = fmt.Fprintln(writer)

	capabilityKeys := make([]string, 0, len(comparison.Levels))
	for capabilityKey := range comparison.Levels {
		capabilityKeys = append(capabilityKeys, capabilityKey)
	}
	sort.Strings(capabilityKeys)

	for _, capabilityKey := range capabilityKeys {
		_, _ = fmt.Fprintf(writer, "%-24s", capabilityKey)
		for _, templateKey := range comparison.TemplateKeys {
			level, granted := comparison.Levels[capabilityKey][templateKey]
			if !granted {
				_, _ = fmt.Fprintf(writer, " %-20s", "-")
				continue
			}
			_, _ = fmt.Fprintf(writer, " %-20s", level)
		}
		_, _ = fmt.Fprintln(writer)
	}

	return nil
}
