package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
)

// RunMergeTemplates combines the capability sets of predefined role templates
// using the given strategy and prints the merged set. Union keeps every
// capability at its highest level; intersection keeps shared capabilities at
// their lowest level. The merge is a pure computation with no storage access.
func RunMergeTemplates(
	templateUseCase authzUseCase.TemplateUseCase,
	writer io.Writer,
	templateKeysCSV string,
	strategyValue string,
	format string,
) error {
	templateKeys := splitKeys(templateKeysCSV)
	if len(templateKeys) == 0 {
		return fmt.Errorf("at least one template key is required")
	}

	strategy, ok := authzDomain.ParseMergeStrategy(strategyValue)
	if !ok {
		return fmt.Errorf("invalid merge strategy: %s (valid options: union, intersection)", strategyValue)
	}

	merged, err := templateUseCase.Merge(templateKeys, strategy)
	if err != nil {
		return fmt.Errorf("failed to merge templates: %w", err)
	}

	// Output result based on format
	if format == "json" {
		result := make(map[string]string, len(merged))
		for key, level := range merged {
			result[key] = string(level)
		}

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return nil
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
		return nil
	}

	_, _ = fmt.Fprintf(writer, "Merged %d template(s) with %s strategy:\n\n", len(templateKeys), strategy)
	for _, key := range sortedKeys(merged) {
		_, _ = fmt.Fprintf(writer, "%-24s %s\n", key, merged[key])
	}

	return nil
}

// splitKeys parses a comma-separated key list and trims whitespace.
func splitKeys(input string) []string {
	parts := strings.Split(input, ",")
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			keys = append(keys, trimmed)
		}
	}

	return keys
}

// sortedKeys returns the capability keys of the merged set in stable order.
func sortedKeys(merged map[string]authzDomain.AccessLevel) []string {
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
