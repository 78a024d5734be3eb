// Package display renders command results as JSON or YAML.
package display

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/arbgen/errors"
)

// ShouldOutputJSON determines if a command should output JSON based on its
// own --json flag or the global one.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// Check if --json flag was explicitly set on the command
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// OutputJSON marshals v with MarshalJSON and writes it to w.
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// OutputYAML writes v as a YAML document.
func OutputYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to marshal YAML")
	}
	return enc.Close()
}

// Output writes v in the named format: "json" or "yaml".
func Output(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		return OutputJSON(w, v)
	case "yaml", "yml":
		return OutputYAML(w, v)
	default:
		return errors.NewInvalidInputError("unknown format %q (want json or yaml)", format)
	}
}
