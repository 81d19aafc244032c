package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strconv"
)

// Canonical converts v into a deterministic, JSON-ready tree.
//
// Sequences keep their order. Records become map[string]any, whose keys are
// emitted sorted by encoding/json. Markers render as their name, reflect types
// as their type string and functions as their fully qualified symbol name.
// Closures sharing a symbol therefore share a canonical form regardless of
// the data they capture.
func Canonical(v any) any {
	return canonicalize(v, false)
}

// canonicalize renders v; tagged output marks markers, types and functions
// so they cannot collide with strings of the same text.
func canonicalize(v any, tagged bool) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Marker:
		if t == nil {
			return nil
		}
		return tag(tagged, "marker:", t.name)
	case reflect.Type:
		return tag(tagged, "type:", t.String())
	case string, bool, json.Number:
		return t
	case float64:
		return canonicalFloat(t)
	case float32:
		return canonicalFloat(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return t
	case json.Marshaler:
		return canonicalJSON(v, tagged)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return nil
		}
		return tag(tagged, "func:", funcName(rv))
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[keyString(iter.Key())] = canonicalize(iter.Value().Interface(), tagged)
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = canonicalize(rv.Index(i).Interface(), tagged)
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return canonicalize(rv.Elem().Interface(), tagged)
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return canonicalFloat(rv.Float())
	case reflect.Struct:
		return canonicalJSON(v, tagged)
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Digest returns the hex SHA-256 of the canonical form of v.
func Digest(v any) string {
	return digest(Canonical(v))
}

// Fingerprint identifies a raw configuration. Configurations that differ only
// in key order share a fingerprint; a marker and a string of the same text
// do not.
func Fingerprint(cfg any) string {
	return digest(canonicalize(cfg, true))
}

func digest(canonical any) string {
	b, err := json.Marshal(canonical)
	if err != nil {
		b = []byte(fmt.Sprintf("%#v", canonical))
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func tag(tagged bool, prefix, s string) string {
	if tagged {
		return prefix + s
	}
	return s
}

func canonicalFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

func canonicalJSON(v any, tagged bool) any {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return string(b)
	}
	return canonicalize(decoded, tagged)
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	if !k.IsValid() {
		return "<nil>"
	}
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprintf("%v", k.Interface())
}

func funcName(rv reflect.Value) string {
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return fn.Name()
	}
	return rv.Type().String()
}
