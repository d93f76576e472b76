package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
)

const rootPath = "$"

// Format renders v as DQL literal text.
//
// The date shape is intercepted before generic object formatting, so
// {"$date": "..."} becomes a quoted string and every other object,
// including $oid wrappers, is written as {key: value, ...}.
func Format(v Value) (string, error) {
	var b strings.Builder
	if err := writeValue(&b, v, rootPath); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatString wraps s in single quotes, doubling any quote inside it.
// All other characters pass through unescaped.
func FormatString(s string) (string, error) {
	var b strings.Builder
	if err := writeString(&b, s, rootPath); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatDate renders the inner text of a $date wrapper. Dates are plain
// string literals in DQL.
func FormatDate(date string) (string, error) {
	return FormatString(date)
}

// FormatBoolean returns true or false.
func FormatBoolean(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatNumber returns the minimal decimal text for n. Integral values
// print without a fractional part; fractional values keep their digits.
func FormatNumber(n Number) string {
	if n.d == nil {
		return "0"
	}
	var reduced apd.Decimal
	reduced.Reduce(n.d)
	if reduced.Exponent >= 0 {
		return reduced.Text('f')
	}
	return n.d.Text('f')
}

// FormatArray renders [a, b, ...]; an empty array is [].
func FormatArray(arr Array) (string, error) {
	var b strings.Builder
	if err := writeArray(&b, arr, rootPath); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatObject renders {key: value, ...} with bare keys in field order.
// It does not unwrap $date; use Format for that.
func FormatObject(obj Object) (string, error) {
	var b strings.Builder
	if err := writeObject(&b, obj, rootPath); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeValue(b *strings.Builder, v Value, path string) error {
	switch val := v.(type) {
	case Null:
		b.WriteString("NULL")
		return nil
	case Object:
		if date, ok := ExtractDate(val); ok {
			return writeString(b, date, path)
		}
		return writeObject(b, val, path)
	case String:
		return writeString(b, string(val), path)
	case Array:
		return writeArray(b, val, path)
	case Bool:
		b.WriteString(FormatBoolean(bool(val)))
		return nil
	case Number:
		b.WriteString(FormatNumber(val))
		return nil
	default:
		return &FormatError{
			Err:    ErrUnsupportedType,
			Path:   path,
			Detail: fmt.Sprintf("%T", v),
		}
	}
}

func writeString(b *strings.Builder, s string, path string) error {
	if !utf8.ValidString(s) {
		return &FormatError{Err: ErrInvalidFormat, Path: path, Detail: "string is not valid UTF-8"}
	}
	b.WriteByte('\'')
	b.WriteString(strings.ReplaceAll(s, "'", "''"))
	b.WriteByte('\'')
	return nil
}

func writeArray(b *strings.Builder, arr Array, path string) error {
	b.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := writeValue(b, elem, indexPath(path, i)); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writeObject(b *strings.Builder, obj Object, path string) error {
	b.WriteByte('{')
	for i, f := range obj {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		if err := writeValue(b, f.Value, keyPath(path, f.Key)); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func keyPath(path, key string) string {
	if isSimpleKey(key) {
		return path + "." + key
	}
	return path + "[" + strconv.Quote(key) + "]"
}

// isSimpleKey reports whether key can be shown after a dot in a path.
func isSimpleKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
