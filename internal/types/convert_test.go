package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int64
	}{
		{name: "int64", input: int64(42), expected: 42},
		{name: "int", input: int(100), expected: 100},
		{name: "int32", input: int32(200), expected: 200},
		{name: "uint64", input: uint64(1000), expected: 1000},
		{name: "uint8", input: uint8(255), expected: 255},
		{name: "float64 truncates", input: float64(42.9), expected: 42},
		{name: "float32 truncates", input: float32(99.7), expected: 99},
		{name: "negative int64", input: int64(-42), expected: -42},
		{name: "bytes parse", input: []byte("1234"), expected: 1234},
		{name: "bytes garbage", input: []byte("abc"), expected: 0},
		{name: "nil", input: nil, expected: 0},
		{name: "string unsupported", input: "42", expected: 0},
		{name: "struct unsupported", input: struct{ Value int }{Value: 42}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToInt64(tt.input))
		})
	}
}

func TestToString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{name: "nil renders empty", input: nil, expected: ""},
		{name: "string", input: "hello", expected: "hello"},
		{name: "bytes", input: []byte("raw"), expected: "raw"},
		{name: "bool", input: true, expected: "true"},
		{name: "int64", input: int64(-7), expected: "-7"},
		{name: "float64", input: float64(1.5), expected: "1.5"},
		{name: "time", input: ts, expected: "2024-03-01T12:30:00Z"},
		{name: "fallback", input: int32(9), expected: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToString(tt.input))
		})
	}
}
