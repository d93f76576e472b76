package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dqlkit/internal/stmtgen"
)

func TestLoad_Directory(t *testing.T) {
	result, err := Load(filepath.Join("testdata", "garage"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.FileCount)
	require.Len(t, result.Collections, 3)

	// Sorted by name.
	assert.Equal(t, "audit", result.Collections[0].Name)
	assert.Equal(t, "cars", result.Collections[1].Name)
	assert.Equal(t, "people", result.Collections[2].Name)

	cars, ok := result.Collection("cars")
	require.True(t, ok)
	assert.Equal(t, []stmtgen.Field{
		{Name: "_id", Hint: stmtgen.HintIdentifier},
		{Name: "make", Hint: stmtgen.HintString},
		{Name: "year", Hint: stmtgen.HintNumber},
		{Name: "sold", Hint: stmtgen.HintBoolean},
		{Name: "owner", Hint: stmtgen.HintNull},
		{Name: "specs", Hint: stmtgen.HintNested},
	}, cars.Fields)

	audit, ok := result.Collection("audit")
	require.True(t, ok)
	assert.Empty(t, audit.Fields)

	_, ok = result.Collection("missing")
	assert.False(t, ok)
}

func TestLoad_DrivesGenerator(t *testing.T) {
	result, err := Load(filepath.Join("testdata", "garage"))
	require.NoError(t, err)

	people, ok := result.Collection("people")
	require.True(t, ok)

	assert.Equal(t,
		`INSERT INTO people DOCUMENTS ({ "_id": "<document-id>", "name": "<value>", "member": true })`,
		stmtgen.Statement(stmtgen.KindInsert, people.Name, people.Fields))
}

func TestParse_InvalidHint(t *testing.T) {
	src := `collection: cars: fields: {
	make: "float"
}
`
	_, err := Parse([]byte(src), "bad.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeInvalidHint, loadErr.Code)
	assert.Contains(t, loadErr.Message, "make")
	assert.True(t, loadErr.Pos.IsValid())
	assert.Equal(t, 2, loadErr.Pos.Line())
}

func TestParse_NonStringHint(t *testing.T) {
	_, err := Parse([]byte(`collection: cars: fields: year: 4`), "bad.cue")

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeInvalidHint, loadErr.Code)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte(`collection: cars: {`), "broken.cue")

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeBuildFailed, loadErr.Code)
}

func TestParse_NoCollections(t *testing.T) {
	result, err := Parse([]byte(`other: 1`), "empty.cue")
	require.NoError(t, err)
	assert.Empty(t, result.Collections)
}

func TestParse_IDAlwaysIdentifier(t *testing.T) {
	result, err := Parse([]byte(`collection: c: fields: "_id": "string"`), "id.cue")
	require.NoError(t, err)
	require.Len(t, result.Collections, 1)
	assert.Equal(t, stmtgen.HintIdentifier, result.Collections[0].Fields[0].Hint)
}

func TestLoad_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		dir  string
		code string
	}{
		{"missing", filepath.Join(tmpDir, "nope"), ErrCodeNotFound},
		{"empty", tmpDir, ErrCodeNoFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.dir)
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.code, loadErr.Code)
		})
	}

	file := filepath.Join(tmpDir, "file.cue")
	require.NoError(t, os.WriteFile(file, []byte(`collection: x: {}`), 0644))
	_, err := Load(file)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadFile(t *testing.T) {
	result, err := LoadFile(filepath.Join("testdata", "garage", "cars.cue"))
	require.NoError(t, err)
	require.Len(t, result.Collections, 1)
	assert.Equal(t, "cars", result.Collections[0].Name)

	_, err = LoadFile(filepath.Join("testdata", "nope.cue"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadErrorString(t *testing.T) {
	err := &LoadError{Code: ErrCodeNoFiles, Message: "no CUE files found in x"}
	assert.Equal(t, "E003: no CUE files found in x", err.Error())
}
