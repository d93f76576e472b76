package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/dqlkit/internal/stmtgen"
)

// Error codes, following the CLI's E00x numbering.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeInvalidHint = "E104" // Unknown field type hint
)

// LoadError is an error with a code and, when available, a CUE position.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Collection is a named collection with its fields in declaration order.
type Collection struct {
	Name   string
	Fields []stmtgen.Field
}

// Result holds the collections found in a schema, sorted by name.
type Result struct {
	Collections []Collection
	FileCount   int
}

// Collection returns the named collection.
func (r *Result) Collection(name string) (Collection, bool) {
	for _, c := range r.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// Load reads every .cue file in dir as a single CUE instance.
func Load(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	if inst := instances[0]; inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cuecontext.New().BuildInstance(instances[0])
	result, err := extract(value)
	if err != nil {
		return nil, err
	}
	result.FileCount = len(files)
	return result, nil
}

// LoadFile compiles a single CUE file.
func LoadFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading schema file: %v", err)}
	}
	return Parse(src, path)
}

// Parse compiles CUE source. filename is used only for positions.
func Parse(src []byte, filename string) (*Result, error) {
	value := cuecontext.New().CompileBytes(src, cue.Filename(filename))
	result, err := extract(value)
	if err != nil {
		return nil, err
	}
	result.FileCount = 1
	return result, nil
}

// extract reads collection.<name>.fields.<field>: "<hint>" entries.
func extract(value cue.Value) (*Result, error) {
	if err := value.Err(); err != nil {
		return nil, convertCUEError(err)
	}

	result := &Result{Collections: []Collection{}}

	collections := value.LookupPath(cue.ParsePath("collection"))
	if !collections.Exists() {
		return result, nil
	}

	iter, err := collections.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating collections: %v", err), Pos: collections.Pos()}
	}
	for iter.Next() {
		coll, err := extractCollection(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		result.Collections = append(result.Collections, coll)
	}

	sort.Slice(result.Collections, func(i, j int) bool {
		return result.Collections[i].Name < result.Collections[j].Name
	})
	return result, nil
}

func extractCollection(name string, v cue.Value) (Collection, error) {
	coll := Collection{Name: name, Fields: []stmtgen.Field{}}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return coll, nil
	}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return Collection{}, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("collection %s: fields must be a struct", name), Pos: fieldsVal.Pos()}
	}
	for iter.Next() {
		fieldName := iter.Selector().Unquoted()
		hintText, err := iter.Value().String()
		if err != nil {
			return Collection{}, &LoadError{
				Code:    ErrCodeInvalidHint,
				Message: fmt.Sprintf("collection %s field %s: type hint must be a string", name, fieldName),
				Pos:     iter.Value().Pos(),
			}
		}
		hint, err := stmtgen.ParseTypeHint(hintText)
		if err != nil {
			return Collection{}, &LoadError{
				Code:    ErrCodeInvalidHint,
				Message: fmt.Sprintf("collection %s field %s: %v", name, fieldName, err),
				Pos:     iter.Value().Pos(),
			}
		}
		if fieldName == stmtgen.IDField {
			hint = stmtgen.HintIdentifier
		}
		coll.Fields = append(coll.Fields, stmtgen.Field{Name: fieldName, Hint: hint})
	}
	return coll, nil
}

// convertCUEError keeps the first CUE error with its position.
func convertCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}
	first := errs[0]
	loadErr := &LoadError{Code: ErrCodeBuildFailed, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
