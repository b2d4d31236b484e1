package condition_test

import (
	"testing"

	"achievement-manager/core/condition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Canonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"8bit compare", "0xH1234=5", "0xH1234=5"},
		{"lowercase size letter", "0xh1234=5", "0xH1234=5"},
		{"lowercase flag", "r:0xH1234=d0xH1234", "R:0xH1234=d0xH1234"},
		{"implicit 16bit", "0x1234=0", "0x 1234=0"},
		{"explicit 16bit", "0x 1234=0", "0x 1234=0"},
		{"negative value underflows", "0=-2", "0=4294967294"},
		{"hex constant", "0xX10>=h100.5.", "0xX10>=256.5."},
		{"zero hits omitted", "T:0xH1=1.0.", "T:0xH1=1"},
		{"calculation flag drops comparison", "A:0xcafe=0", "A:0x cafe"},
		{"measured with calculation", "M:0xX34440*2", "M:0xX34440*2"},
		{"float memory and float constant", "fF1234>f1.5", "fF1234>f1.5"},
		{"integral float keeps fraction", "0xH1=f2.0", "0xH1=f2.0"},
		{"invert and bcd", "~0xH1=b0xH2", "~0xH1=b0xH2"},
		{"mixed case prior", "p0xh10!=P0XH10", "p0xH10!=p0xH10"},
		{"bit6 size", "0xS10=1", "0xS10=1"},
		{"add address", "I:0xX20", "I:0xX20"},
		{"surrounding whitespace", "  0xH1=1 ", "0xH1=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := condition.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())

			again, err := condition.Parse(c.String())
			require.NoError(t, err)
			assert.Equal(t, c.String(), again.String())
			assert.True(t, c.Equal(again))
		})
	}
}

func TestParse_Underflow(t *testing.T) {
	c, err := condition.Parse("0=-2")
	require.NoError(t, err)
	assert.Equal(t, condition.TypeValue, c.RValue().Type)
	assert.Equal(t, float64(4294967294), c.RValue().Value)

	c, err = condition.Parse("0=-2147483648")
	require.NoError(t, err)
	assert.Equal(t, float64(2147483648), c.RValue().Value)

	_, err = condition.Parse("0=-2147483649")
	require.Error(t, err)
	assert.Equal(t,
		"rvalue: -2147483649 (-0x80000001) underflows into positive 2147483647 (0x7fffffff), it's very unlikely you intended for that to happen",
		err.Error(),
	)

	_, err = condition.Parse("0=4294967296")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected rvalue to be within the range of -0x80000000 .. 0xFFFFFFFF, but got 4294967296")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown flag", "baobab:0=1", `expected a legal condition flag, but got "baobab:"`},
		{"missing comparison", "0xH1234", `expected comparison operator (= != < <= > >=), but got ""`},
		{"bad size", "0xZ1=1", `lvalue: expected valid size specifier, but got "Z1=1"`},
		{"typed integer", "0xH1=d5", `rvalue: expected proper definition, but got "5"`},
		{"unknown operator", "0xH1?1", `expected an operator, but got "?1"`},
		{"bad hits", "0xH1=1.x.", `expected hits as unsigned integer, but got "x"`},
		{"unterminated hits", "0xH1=1.5", `expected hits definition, but got ".5"`},
		{"trailing data", "0xH1=1.5.x", `unexpected trailing data "x"`},
		{"hits on calculation flag", "A:0xH1*2.5.", "hits value cannot be specified with AddSource condition flag"},
		{"calculation operator without rvalue", "B:0xH1*", `rvalue: expected proper definition, but got ""`},
		{"address out of range", "0xH100000000=1", "expected lvalue memory address to be within the range of 0x0 .. 0xFFFFFFFF, but got 4294967296"},
		{"float out of range", "0xH1=f4294967041.0", "expected rvalue to be within the range of -294967040 .. 4294967040, but got 4294967041"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := condition.Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNew_Validation(t *testing.T) {
	mem := condition.Operand{Type: condition.TypeMem, Size: condition.Size8Bit, Value: 0x10}
	val := condition.Operand{Type: condition.TypeValue, Value: 1}

	tests := []struct {
		name string
		data condition.Data
		want string
	}{
		{
			name: "unknown flag",
			data: condition.Data{Flag: "Bogus", LValue: mem, Cmp: condition.OpEqual, RValue: val},
			want: `expected valid condition flag, but got "Bogus"`,
		},
		{
			name: "value with size",
			data: condition.Data{LValue: mem, Cmp: condition.OpEqual, RValue: condition.Operand{Type: condition.TypeValue, Size: condition.Size8Bit}},
			want: `rvalue value cannot have size specified, but got "8bit"`,
		},
		{
			name: "comparison with calculation flag",
			data: condition.Data{Flag: condition.FlagAddSource, LValue: mem, Cmp: condition.OpEqual, RValue: val},
			want: `expected an accumulation operator (* / & ^), but got "="`,
		},
		{
			name: "calculation rvalue without operator",
			data: condition.Data{Flag: condition.FlagSubSource, LValue: mem, RValue: val},
			want: `expected an accumulation operator (* / & ^), but got ""`,
		},
		{
			name: "operator without rvalue",
			data: condition.Data{LValue: mem, Cmp: condition.OpEqual},
			want: "rvalue must be fully provided if operator is specified",
		},
		{
			name: "memory without size",
			data: condition.Data{LValue: condition.Operand{Type: condition.TypeDelta, Value: 1}, Cmp: condition.OpEqual, RValue: val},
			want: `expected valid lvalue size, but got ""`,
		},
		{
			name: "non integer value",
			data: condition.Data{LValue: mem, Cmp: condition.OpEqual, RValue: condition.Operand{Type: condition.TypeValue, Value: 1.5}},
			want: "expected rvalue value to be integer, but got 1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := condition.New(tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNew_NormalizesNegativeValue(t *testing.T) {
	c, err := condition.New(condition.Data{
		LValue: condition.Operand{Type: condition.TypeMem, Size: condition.Size32Bit, Value: 4},
		Cmp:    condition.OpGreater,
		RValue: condition.Operand{Type: condition.TypeValue, Value: -1},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xX4>4294967295", c.String())
}

func TestCondition_BareMeasuredIsAllowed(t *testing.T) {
	c, err := condition.Parse("M:0xH1234")
	require.NoError(t, err)
	assert.Equal(t, condition.FlagMeasured, c.Flag())
	assert.False(t, c.RValue().Defined())
	assert.Equal(t, condition.OpNone, c.Cmp())
}

func TestCondition_With(t *testing.T) {
	orig := condition.MustParse("0xH1234=5")

	changed, err := orig.With(func(d *condition.Data) {
		d.Flag = condition.FlagResetIf
		d.Hits = 3
	})
	require.NoError(t, err)

	assert.Equal(t, "R:0xH1234=5.3.", changed.String())
	assert.Equal(t, "0xH1234=5", orig.String())

	_, err = orig.With(func(d *condition.Data) { d.Cmp = condition.OpMultiply })
	require.Error(t, err)
}

func TestCondition_Pretty(t *testing.T) {
	tests := []struct {
		input string
		want  [9]string
	}{
		{"0=-2", [9]string{"", "Value", "", "0", "=", "Value", "", "-2", ""}},
		{"0xH1234=100000", [9]string{"", "Mem", "8bit", "0x1234", "=", "Value", "", "0x186a0", ""}},
		{"R:d0xX10<99999.7.", [9]string{"ResetIf", "Delta", "32bit", "0x10", "<", "Value", "", "99999", "7"}},
		{"A:0xH1", [9]string{"AddSource", "Mem", "8bit", "0x1", "", "", "", "", ""}},
		{"0xH1=-4097", [9]string{"", "Mem", "8bit", "0x1", "=", "Value", "", "0xffffefff", ""}},
		{"0xH1=f100000.5", [9]string{"", "Mem", "8bit", "0x1", "=", "Float", "", "0x186a0.8", ""}},
		{"0xH1=f100000.0", [9]string{"", "Mem", "8bit", "0x1", "=", "Float", "", "0x186a0", ""}},
		{"0xH1=f99999.25", [9]string{"", "Mem", "8bit", "0x1", "=", "Float", "", "99999.25", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, condition.MustParse(tt.input).Pretty())
		})
	}
}

func TestFromSlice(t *testing.T) {
	c, err := condition.FromSlice([]any{"", "Mem", "8bit", 0x1234, "=", "Value", "", 5})
	require.NoError(t, err)
	assert.Equal(t, "0xH1234=5", c.String())

	c, err = condition.FromSlice([]any{"ResetIf", "Delta", "16bit", 16, "!=", "Mem", "16bit", 16, 2})
	require.NoError(t, err)
	assert.Equal(t, "R:d0x 10!=0x 10.2.", c.String())

	c, err = condition.FromSlice([]any{"Measured", "Mem", "32bit", 4})
	require.NoError(t, err)
	assert.Equal(t, "M:0xX4", c.String())

	_, err = condition.FromSlice([]any{"", "Mem"})
	assert.EqualError(t, err, "expected 4, 8 or 9 elements in condition array, but got 2")

	_, err = condition.FromSlice([]any{"", "Mem", "8bit", "x"})
	assert.EqualError(t, err, "expected lvalue value as number, but got x")
}
