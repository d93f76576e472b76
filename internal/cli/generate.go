package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dqlkit/internal/literal"
	"github.com/roach88/dqlkit/internal/schema"
	"github.com/roach88/dqlkit/internal/stmtgen"
)

// kindAll asks generate for every statement kind.
const kindAll = "all"

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Fields []string
	Schema string
	Sample string
}

// GeneratedStatement is one entry of the generate command's JSON payload.
type GeneratedStatement struct {
	Kind       string `json:"kind"`
	Collection string `json:"collection"`
	Statement  string `json:"statement"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <kind|all> <collection>",
		Short: "Generate a DQL statement template",
		Long: fmt.Sprintf(`Generate a DQL statement template for a collection.

Kinds: %s, or "all" for every kind.

Fields come from a CUE schema (--schema), from a sample JSON or YAML
document (--sample), or from --field name[:hint] flags. --field entries
override the hint of a field with the same name and append new fields.
Hints: identifier, string, number, boolean, null, nested.

Example:
  dqlkit generate insert cars --field make --field year:number
  dqlkit generate all cars --schema ./schemas
  dqlkit generate update cars --sample car.json`, kindNames()),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Fields, "field", "f", nil, "field as name[:hint] (repeatable)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema directory or .cue file")
	cmd.Flags().StringVar(&opts.Sample, "sample", "", "sample document to infer fields from")
	cmd.MarkFlagsMutuallyExclusive("schema", "sample")

	return cmd
}

func runGenerate(opts *GenerateOptions, kindArg, collection string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	kinds, err := parseKinds(kindArg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnknownKind, err.Error(), nil)
	}

	fields, err := baseFields(opts, collection, cmd)
	if err != nil {
		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, loadErrorDetails(loadErr))
		}
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	for _, raw := range opts.Fields {
		field, err := stmtgen.ParseField(raw)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
		}
		fields = mergeField(fields, field)
	}
	formatter.VerboseLog("generating %d statement(s) for %s with %d field(s)", len(kinds), collection, len(fields))

	statements := make([]GeneratedStatement, 0, len(kinds))
	lines := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		stmt := stmtgen.Statement(kind, collection, fields)
		statements = append(statements, GeneratedStatement{
			Kind:       string(kind),
			Collection: collection,
			Statement:  stmt,
		})
		if len(kinds) > 1 {
			lines = append(lines, fmt.Sprintf("%s %s", formatter.Accent(string(kind)+":"), stmt))
		} else {
			lines = append(lines, stmt)
		}
	}

	if len(statements) == 1 {
		return formatter.Render(statements[0], lines[0])
	}
	return formatter.Render(statements, strings.Join(lines, "\n"))
}

func parseKinds(arg string) ([]stmtgen.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(arg), kindAll) {
		return stmtgen.Kinds, nil
	}
	kind, err := stmtgen.ParseKind(arg)
	if err != nil {
		return nil, err
	}
	return []stmtgen.Kind{kind}, nil
}

// baseFields loads fields from --schema or --sample. Neither yields none.
func baseFields(opts *GenerateOptions, collection string, cmd *cobra.Command) ([]stmtgen.Field, error) {
	switch {
	case opts.Schema != "":
		result, err := loadSchema(opts.Schema)
		if err != nil {
			return nil, err
		}
		coll, ok := result.Collection(collection)
		if !ok {
			return nil, fmt.Errorf("collection %q not declared in schema %s", collection, opts.Schema)
		}
		return coll.Fields, nil

	case opts.Sample != "":
		value, err := decodeDocument(opts.Sample, false, cmd)
		if err != nil {
			return nil, err
		}
		doc, ok := value.(literal.Object)
		if !ok {
			return nil, fmt.Errorf("sample %s is a %s, want an object", opts.Sample, literal.Classify(value))
		}
		return stmtgen.HintsFromDocument(doc), nil
	}
	return nil, nil
}

// loadSchema loads a schema from a directory or a single .cue file.
func loadSchema(path string) (*schema.Result, error) {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return schema.LoadFile(path)
	}
	return schema.Load(path)
}

// mergeField replaces the hint of an existing field or appends a new one.
func mergeField(fields []stmtgen.Field, field stmtgen.Field) []stmtgen.Field {
	for i, f := range fields {
		if f.Name == field.Name {
			out := append([]stmtgen.Field(nil), fields...)
			out[i] = field
			return out
		}
	}
	return append(fields, field)
}

func kindNames() string {
	names := make([]string, len(stmtgen.Kinds))
	for i, k := range stmtgen.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
