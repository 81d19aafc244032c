package schema

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest_KeyOrderIndependent(t *testing.T) {
	a := map[string]any{"type": "number", "min": 0, "nested": map[string]any{"x": 1, "y": []any{1, 2}}}
	b := Config{"nested": Config{"y": []any{1, 2}, "x": 1}, "min": 0, "type": "number"}

	assert.Equal(t, Digest(a), Digest(b))
	assert.Len(t, Digest(a), 64)
}

func TestDigest_SequenceOrderMatters(t *testing.T) {
	assert.NotEqual(t, Digest([]any{1, 2}), Digest([]any{2, 1}))
}

func TestDigest_IntegersAndFloatsAgree(t *testing.T) {
	assert.Equal(t, Digest(map[string]any{"min": 1}), Digest(map[string]any{"min": 1.0}))
	assert.NotEqual(t, Digest(map[string]any{"min": 1}), Digest(map[string]any{"min": 2}))
}

func TestCanonical_Specials(t *testing.T) {
	assert.Equal(t, "Number", Canonical(Number))
	assert.Equal(t, "NaN", Canonical(math.NaN()))
	assert.Equal(t, "Infinity", Canonical(math.Inf(1)))
	assert.Equal(t, "-Infinity", Canonical(math.Inf(-1)))
	assert.Equal(t, "strings.ToUpper", Canonical(strings.ToUpper))
	assert.Equal(t, "int", Canonical(reflect.TypeOf(0)))
	assert.Nil(t, Canonical(nil))
}

func TestCanonical_Structs(t *testing.T) {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	got := Canonical(point{X: 1, Y: 2})
	assert.Equal(t, map[string]any{"x": 1.0, "y": 2.0}, got)
}

func TestCanonical_NonStringKeys(t *testing.T) {
	got := Canonical(map[int]string{1: "a", 2: "b"})
	assert.Equal(t, map[string]any{"1": "a", "2": "b"}, got)
}

func TestFingerprint_SeparatesMarkersFromStrings(t *testing.T) {
	marker := Config{"type": Number}
	text := Config{"type": "Number"}

	assert.Equal(t, Digest(marker), Digest(text))
	assert.NotEqual(t, Fingerprint(marker), Fingerprint(text))
	assert.Equal(t, Fingerprint(Config{"type": Number, "min": 0}), Fingerprint(map[string]any{"min": 0, "type": Number}))
}
