package utils_test

import (
	"encoding/json"
	"math"
	"testing"

	"achievement-manager/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
	}{
		{"Int", 5, 5},
		{"Float", 3.0, 3},
		{"NaN", math.NaN(), 0},
		{"Number", json.Number("12"), 12},
		{"NumberFraction", json.Number("2.5"), 2},
		{"String", " 42 ", 42},
		{"StringFraction", "7.9", 7},
		{"Bytes", []byte("7"), 7},
		{"Garbage", "x", 0},
		{"Nil", nil, 0},
		{"Bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ToInt(tt.val))
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"True", true, true},
		{"False", false, false},
		{"One", 1, true},
		{"Zero", 0, false},
		{"JSONNumber", float64(1), true},
		{"JSONZero", float64(0), false},
		{"Number", json.Number("1"), true},
		{"StringTrue", "TRUE", true},
		{"StringOne", "1", true},
		{"StringNo", "no", false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ToBool(tt.val))
		})
	}
}
