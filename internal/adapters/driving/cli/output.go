package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	jsonOutput bool
	yamlOutput bool
)

func validateFormat() error {
	if jsonOutput && yamlOutput {
		return errors.New("--json and --yaml are mutually exclusive")
	}
	return nil
}

func outputFormat() string {
	switch {
	case jsonOutput:
		return formatJSON
	case yamlOutput:
		return formatYAML
	default:
		return formatText
	}
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(cmd *cobra.Command, v any, text func()) error {
	switch outputFormat() {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
	case formatYAML:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		return enc.Close()
	default:
		text()
	}
	return nil
}
