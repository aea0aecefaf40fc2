package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds. The zero Value is KindNull.
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindArray
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a free-form, recursive parameter value attached to a ServiceError.
// Values form trees: they are built fresh and never reference themselves.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps a signed 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array wraps an ordered sequence of values. The slice is copied.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

// Object wraps a string-keyed mapping of values. The map is copied.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// ValueOf converts a Go value into a Value.
//
// Integers of every width map to Int (uint64 values above math.MaxInt64 map
// to Float), float32 widens exactly to Float, slices and arrays map to Array
// and string-keyed maps map to Object. Pointers are followed, nil maps to Null,
// and anything else is rendered with fmt.Sprint into a String.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case *Value:
		if x == nil {
			return Null()
		}
		return *x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return fromUint(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case []Value:
		return Array(x...)
	case map[string]Value:
		return Object(x)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = ValueOf(item)
		}
		return Value{kind: KindArray, arr: items}
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fields[k] = ValueOf(item)
		}
		return Value{kind: KindObject, obj: fields}
	case error:
		return String(x.Error())
	case fmt.Stringer:
		return String(x.String())
	}
	return valueOfReflect(reflect.ValueOf(v))
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

func valueOfReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = ValueOf(rv.Index(i).Interface())
		}
		return Value{kind: KindArray, arr: items}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null()
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = ValueOf(iter.Value().Interface())
		}
		return Value{kind: KindObject, obj: fields}
	}
	return String(fmt.Sprint(rv.Interface()))
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Int64 returns the integer payload and whether v is an integer.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == KindInt }

// Float64 returns the float payload and whether v is a float.
func (v Value) Float64() (float64, bool) { return v.f, v.kind == KindFloat }

// BoolValue returns the boolean payload and whether v is a boolean.
func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

// Items returns a copy of the array elements, or nil if v is not an array.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out
}

// Fields returns a copy of the object fields, or nil if v is not an object.
func (v Value) Fields() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	out := make(map[string]Value, len(v.obj))
	for k, f := range v.obj {
		out[k] = f
	}
	return out
}

// Len returns the number of elements of an array or object, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Equal reports whether v and other are structurally equal.
// Int and Float never compare equal to each other.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == other.s
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, a := range v.obj {
			b, ok := other.obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]Value, len(v.obj))
		for k, item := range v.obj {
			obj[k] = item.Clone()
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return v
	}
}

// String renders v as text. Arrays print as "[a, b]" and objects as
// "{k1: v1, k2: v2}" with keys in sorted order.
func (v Value) String() string {
	var sb strings.Builder
	v.writeText(&sb)
	return sb.String()
}

func (v Value) writeText(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		sb.WriteString(v.s)
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeText(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		writeFields(sb, v.obj)
	}
}

// writeFields renders a mapping as "{k1: v1, k2: v2}" in sorted key order.
func writeFields(sb *strings.Builder, fields map[string]Value) {
	sb.WriteByte('{')
	for i, k := range sortedKeys(fields) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		fields[k].writeText(sb)
	}
	sb.WriteByte('}')
}

func sortedKeys(fields map[string]Value) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface returns v as a plain Go value: nil, string, int64, float64, bool,
// []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as the natural JSON value for its kind.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	}
	return nil, fmt.Errorf("errors: cannot marshal value of kind %s", v.kind)
}

// UnmarshalJSON decodes any JSON value. Integral numbers that fit in int64
// decode as Int and every other number decodes as Float.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = fromDecoded(raw)
	return nil
}

func fromDecoded(raw any) Value {
	switch x := raw.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i)
		}
		f, _ := x.Float64()
		return Float(f)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = fromDecoded(item)
		}
		return Value{kind: KindArray, arr: items}
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fields[k] = fromDecoded(item)
		}
		return Value{kind: KindObject, obj: fields}
	default:
		return ValueOf(x)
	}
}
