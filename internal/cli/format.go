package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dqlkit/internal/literal"
)

// FormatOptions holds flags for the format command.
type FormatOptions struct {
	*RootOptions
	YAML     bool
	ShowKind bool
}

// FormatResult is the JSON payload of the format command.
type FormatResult struct {
	Literal string `json:"literal"`
	Kind    string `json:"kind,omitempty"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FormatOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Render a JSON or YAML document as a DQL literal",
		Long: `Render a JSON (or YAML) value as DQL literal text. Reads stdin when no
file is given. Files ending in .yaml or .yml are decoded as YAML.

Single-key {"$date": "..."} objects render as quoted date strings and key
order is preserved.

Example:
  dqlkit format car.json
  echo '{"make": "Ford", "year": 1969}' | dqlkit format --type`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runFormat(opts, path, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.YAML, "yaml", false, "decode input as YAML")
	cmd.Flags().BoolVar(&opts.ShowKind, "type", false, "also print the value's classified kind")

	return cmd
}

func runFormat(opts *FormatOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	value, err := decodeDocument(path, opts.YAML, cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDecodeFailed, err.Error(), nil)
	}

	text, err := literal.Format(value)
	if err != nil {
		var fmtErr *literal.FormatError
		if errors.As(err, &fmtErr) {
			return formatter.Fail(ExitFailure, ErrCodeFormatFailed, err.Error(), map[string]string{"path": fmtErr.Path})
		}
		return formatter.Fail(ExitFailure, ErrCodeFormatFailed, err.Error(), nil)
	}

	result := FormatResult{Literal: text}
	if opts.ShowKind {
		result.Kind = literal.Classify(value).String()
		text += "\n" + formatter.Accent("kind: "+result.Kind)
	}
	return formatter.Render(result, text)
}

// decodeDocument reads path (or stdin) as JSON, or as YAML when asYAML is
// set or the file extension says so.
func decodeDocument(path string, asYAML bool, cmd *cobra.Command) (literal.Value, error) {
	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		asYAML = true
	}

	if asYAML {
		return literal.DecodeYAML(data)
	}
	return literal.DecodeJSON(data)
}
