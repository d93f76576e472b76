package literal

// Value is a sealed interface over the value shapes the formatter accepts.
// Only String, Number, Bool, Null, Array and Object implement it.
type Value interface {
	literalValue() // Sealed - only these types implement it
}

// String is a text value.
type String string

func (String) literalValue() {}

// Bool is a boolean value. It is never conflated with the numbers 1 and 0.
type Bool bool

func (Bool) literalValue() {}

// Null is the null value.
type Null struct{}

func (Null) literalValue() {}

// Array is an ordered list of values.
type Array []Value

func (Array) literalValue() {}

// Field is a single key/value entry of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered mapping of field names to values.
// Formatting emits fields in slice order.
type Object []Field

func (Object) literalValue() {}

// F is a shorthand for Field used when building objects by hand.
// Example: Object{F("name", String("cart")), F("count", Int(5))}
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Get returns the value stored under key.
func (obj Object) Get(key string) (Value, bool) {
	for _, f := range obj {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (obj Object) Has(key string) bool {
	_, ok := obj.Get(key)
	return ok
}

// Keys returns the field names in order.
func (obj Object) Keys() []string {
	keys := make([]string, len(obj))
	for i, f := range obj {
		keys[i] = f.Key
	}
	return keys
}

// With returns obj with key set to value. An existing key keeps its
// position and takes the new value; a new key is appended.
func (obj Object) With(key string, value Value) Object {
	for i, f := range obj {
		if f.Key == key {
			out := make(Object, len(obj))
			copy(out, obj)
			out[i].Value = value
			return out
		}
	}
	return append(obj, Field{Key: key, Value: value})
}

// Extended-type wrapper keys.
const (
	DateKey     = "$date"
	ObjectIDKey = "$oid"
)

// ExtractDate returns the inner date text of a {"$date": "..."} wrapper.
// The object must have exactly one key and its value must be a String.
func ExtractDate(obj Object) (string, bool) {
	if len(obj) != 1 || obj[0].Key != DateKey {
		return "", false
	}
	s, ok := obj[0].Value.(String)
	if !ok {
		return "", false
	}
	return string(s), true
}

// ExtractObjectID returns the inner id of a {"$oid": "..."} wrapper.
// Only used for inspection: formatting never unwraps $oid.
func ExtractObjectID(obj Object) (string, bool) {
	if len(obj) != 1 || obj[0].Key != ObjectIDKey {
		return "", false
	}
	s, ok := obj[0].Value.(String)
	if !ok {
		return "", false
	}
	return string(s), true
}

// Kind is the classification tag of a Value.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindBoolean
	KindNumber
	KindNull
	KindArray
	KindObject
	KindDate
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindString:  "string",
	KindBoolean: "boolean",
	KindNumber:  "number",
	KindNull:    "null",
	KindArray:   "array",
	KindObject:  "object",
	KindDate:    "date",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Classify returns the tag of a value. An Object classifies as KindDate
// only when its sole key is "$date" with a String value; objects carrying
// "$oid" are plain KindObject. A nil Value is KindUnknown.
func Classify(v Value) Kind {
	switch val := v.(type) {
	case String:
		return KindString
	case Bool:
		return KindBoolean
	case Number:
		return KindNumber
	case Null:
		return KindNull
	case Array:
		return KindArray
	case Object:
		if _, ok := ExtractDate(val); ok {
			return KindDate
		}
		return KindObject
	default:
		return KindUnknown
	}
}
