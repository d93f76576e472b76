package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dqlkit/internal/schema"
)

// SchemaField is a field in the schema command's JSON payload.
type SchemaField struct {
	Name string `json:"name"`
	Hint string `json:"hint"`
}

// SchemaCollection is a collection in the schema command's JSON payload.
type SchemaCollection struct {
	Name   string        `json:"name"`
	Fields []SchemaField `json:"fields"`
}

// SchemaResult is the JSON payload of the schema command.
type SchemaResult struct {
	Valid       bool               `json:"valid"`
	FileCount   int                `json:"file_count"`
	Collections []SchemaCollection `json:"collections"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <dir|file.cue>",
		Short: "Validate collection schemas and list their fields",
		Long: `Load CUE collection schemas and list each collection's fields and hints.

Schemas declare fields as:

  collection: cars: fields: {
  	"_id": "identifier"
  	make:  "string"
  	year:  "number"
  }

Example:
  dqlkit schema ./schemas`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSchema(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result, err := loadSchema(path)
	if err != nil {
		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) {
			// A schema that fails to load is a failed validation, a missing one is a command error.
			exit := ExitFailure
			switch loadErr.Code {
			case schema.ErrCodeNotFound, schema.ErrCodeNoFiles, schema.ErrCodeScanError:
				exit = ExitCommandError
			}
			return formatter.Fail(exit, loadErr.Code, loadErr.Message, loadErrorDetails(loadErr))
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, path)

	payload := SchemaResult{Valid: true, FileCount: result.FileCount, Collections: []SchemaCollection{}}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d collection(s))", formatter.OK("✓ Schema valid"), len(result.Collections))
	for _, c := range result.Collections {
		sc := SchemaCollection{Name: c.Name, Fields: []SchemaField{}}
		parts := make([]string, 0, len(c.Fields))
		for _, f := range c.Fields {
			sc.Fields = append(sc.Fields, SchemaField{Name: f.Name, Hint: f.Hint.String()})
			parts = append(parts, f.Name+":"+f.Hint.String())
		}
		payload.Collections = append(payload.Collections, sc)
		fmt.Fprintf(&b, "\n  %s", formatter.Accent(c.Name+":"))
		if len(parts) > 0 {
			b.WriteString(" " + strings.Join(parts, ", "))
		}
	}

	return formatter.Render(payload, b.String())
}

// loadErrorDetails reports the CUE position of a load error, if any.
func loadErrorDetails(err *schema.LoadError) any {
	if !err.Pos.IsValid() {
		return nil
	}
	return map[string]any{
		"file":   err.Pos.Filename(),
		"line":   err.Pos.Line(),
		"column": err.Pos.Column(),
	}
}
