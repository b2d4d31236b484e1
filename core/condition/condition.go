package condition

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Data is the plain, unvalidated shape of a condition. Use New to turn it into
// a Condition.
type Data struct {
	Flag   Flag     `yaml:"flag" json:"flag"`
	LValue Operand  `yaml:"lvalue" json:"lvalue"`
	Cmp    Operator `yaml:"cmp" json:"cmp"`
	RValue Operand  `yaml:"rvalue" json:"rvalue"`
	Hits   uint32   `yaml:"hits" json:"hits"`
}

// Condition is a single validated memory comparison. The zero value is not
// usable; construct one with New, Parse or FromSlice.
type Condition struct {
	flag   Flag
	lvalue Operand
	cmp    Operator
	rvalue Operand
	hits   uint32
}

var (
	flagPattern = regexp.MustCompile(`^(.*?):`)
	hitsPattern = regexp.MustCompile(`^\.(.*)\.`)
	hitsDigits  = regexp.MustCompile(`^\d+$`)
)

// New validates d and returns the resulting condition.
func New(d Data) (Condition, error) {
	if !d.Flag.Valid() {
		return Condition{}, fmt.Errorf("expected valid condition flag, but got %s", quote(string(d.Flag)))
	}
	if !d.Cmp.Valid() {
		return Condition{}, fmt.Errorf("expected a legal operator, but got %s", quote(string(d.Cmp)))
	}
	if !d.LValue.Defined() {
		return Condition{}, fmt.Errorf("expected valid lvalue type, but got %s", quote(string(d.LValue.Type)))
	}

	lvalue, err := validateOperand(d.LValue, "lvalue")
	if err != nil {
		return Condition{}, err
	}
	rvalue := d.RValue
	if rvalue.Defined() || rvalue.Size != SizeNone {
		if rvalue, err = validateOperand(rvalue, "rvalue"); err != nil {
			return Condition{}, err
		}
	}

	switch {
	case d.Flag.IsCalculation():
		if d.Cmp != OpNone {
			if !d.Cmp.IsCalculation() {
				return Condition{}, fmt.Errorf("expected an accumulation operator (* / & ^), but got %s", quote(string(d.Cmp)))
			}
			if !rvalue.Defined() {
				return Condition{}, fmt.Errorf("rvalue must be fully provided if operator is specified")
			}
		} else if rvalue.Defined() {
			return Condition{}, fmt.Errorf("expected an accumulation operator (* / & ^), but got %s", quote(""))
		}
		if d.Hits > 0 {
			return Condition{}, fmt.Errorf("hits value cannot be specified with %s condition flag", d.Flag)
		}
	case d.Flag == FlagMeasured && d.Cmp == OpNone && !rvalue.Defined():
		// bare Measured is rejected later, where group context is known
	case d.Flag == FlagMeasured && d.Cmp.IsCalculation():
		if !rvalue.Defined() {
			return Condition{}, fmt.Errorf("rvalue must be fully provided if operator is specified")
		}
	default:
		if !d.Cmp.IsComparison() {
			return Condition{}, fmt.Errorf("expected comparison operator (= != < <= > >=), but got %s", quote(string(d.Cmp)))
		}
		if !rvalue.Defined() {
			return Condition{}, fmt.Errorf("rvalue must be fully provided if operator is specified")
		}
	}

	return Condition{
		flag:   d.Flag,
		lvalue: lvalue,
		cmp:    d.Cmp,
		rvalue: rvalue,
		hits:   d.Hits,
	}, nil
}

// Parse reads a condition from its code form, for example "R:0xH1234=d0xH1234.5.".
func Parse(s string) (Condition, error) {
	d := Data{}
	s = strings.TrimSpace(s)

	if m := flagPattern.FindStringSubmatch(s); m != nil {
		flag, ok := flagsByLetter[strings.ToUpper(m[1])]
		if !ok {
			return Condition{}, fmt.Errorf("expected a legal condition flag, but got %s", quote(m[0]))
		}
		d.Flag = flag
		s = s[len(m[0]):]
	}

	lvalue, rest, err := parseOperand(s)
	if err != nil {
		return Condition{}, fmt.Errorf("lvalue: %w", err)
	}
	d.LValue = lvalue
	s = rest

	if s != "" {
		cmp, ok := parseOperator(s)
		if !ok {
			return Condition{}, fmt.Errorf("expected an operator, but got %s", quote(preview(s)))
		}
		s = s[len(cmp):]

		rvalue, rest, err := parseOperand(s)
		if err != nil {
			return Condition{}, fmt.Errorf("rvalue: %w", err)
		}
		s = rest

		if s != "" {
			m := hitsPattern.FindStringSubmatch(s)
			if m == nil {
				return Condition{}, fmt.Errorf("expected hits definition, but got %s", quote(s))
			}
			if !hitsDigits.MatchString(m[1]) {
				return Condition{}, fmt.Errorf("expected hits as unsigned integer, but got %s", quote(m[1]))
			}
			hits, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				return Condition{}, fmt.Errorf("expected hits to be within the range of 0x0 .. 0xFFFFFFFF, but got %s", m[1])
			}
			d.Hits = uint32(hits)
			s = s[len(m[0]):]
		}
		if s != "" {
			return Condition{}, fmt.Errorf("unexpected trailing data %s", quote(s))
		}

		if d.Flag.IsCalculation() && cmp.IsComparison() {
			// calculation flags ignore a comparison entirely
			cmp = OpNone
			rvalue = Operand{}
		}
		d.Cmp = cmp
		d.RValue = rvalue
	}

	return New(d)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Condition {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromSlice builds a condition from its positional form:
//
//	[flag, lType, lSize, lValue, cmp, rType, rSize, rValue, hits]
//
// The rvalue part and hits may be omitted.
func FromSlice(values []any) (Condition, error) {
	if len(values) != 4 && len(values) != 8 && len(values) != 9 {
		return Condition{}, fmt.Errorf("expected 4, 8 or 9 elements in condition array, but got %d", len(values))
	}

	var err error
	d := Data{}
	fields := []struct {
		name string
		dst  *string
	}{
		{"flag", (*string)(&d.Flag)},
		{"lvalue type", (*string)(&d.LValue.Type)},
		{"lvalue size", (*string)(&d.LValue.Size)},
	}
	for i, f := range fields {
		if *f.dst, err = sliceString(values[i], f.name); err != nil {
			return Condition{}, err
		}
	}
	if d.LValue.Value, err = sliceNumber(values[3], "lvalue value"); err != nil {
		return Condition{}, err
	}

	if len(values) >= 8 {
		fields = []struct {
			name string
			dst  *string
		}{
			{"cmp", (*string)(&d.Cmp)},
			{"rvalue type", (*string)(&d.RValue.Type)},
			{"rvalue size", (*string)(&d.RValue.Size)},
		}
		for i, f := range fields {
			if *f.dst, err = sliceString(values[4+i], f.name); err != nil {
				return Condition{}, err
			}
		}
		if d.RValue.Value, err = sliceNumber(values[7], "rvalue value"); err != nil {
			return Condition{}, err
		}
	}

	if len(values) == 9 && values[8] != nil {
		hits, err := sliceNumber(values[8], "hits")
		if err != nil {
			return Condition{}, err
		}
		if hits < 0 || hits > maxUint32 || hits != math.Trunc(hits) {
			return Condition{}, fmt.Errorf("expected hits as unsigned integer, but got %s", formatNumber(hits))
		}
		d.Hits = uint32(hits)
	}

	return New(d)
}

// Flag returns the condition flag.
func (c Condition) Flag() Flag { return c.flag }

// LValue returns the left operand.
func (c Condition) LValue() Operand { return c.lvalue }

// Cmp returns the operator, which is OpNone when there is no rvalue.
func (c Condition) Cmp() Operator { return c.cmp }

// RValue returns the right operand, which may be undefined.
func (c Condition) RValue() Operand { return c.rvalue }

// Hits returns the required hit count.
func (c Condition) Hits() uint32 { return c.hits }

// Data returns a copy of the condition fields.
func (c Condition) Data() Data {
	return Data{Flag: c.flag, LValue: c.lvalue, Cmp: c.cmp, RValue: c.rvalue, Hits: c.hits}
}

// With applies patch to a copy of the condition fields and validates the result.
// The receiver is never modified.
func (c Condition) With(patch func(*Data)) (Condition, error) {
	d := c.Data()
	patch(&d)
	return New(d)
}

// String returns the canonical code form. Two conditions are equal exactly
// when their canonical forms are equal.
func (c Condition) String() string {
	var b strings.Builder
	if c.flag != FlagNone {
		b.WriteString(c.flag.Letter())
		b.WriteString(":")
	}
	b.WriteString(c.lvalue.String())
	if c.rvalue.Defined() {
		b.WriteString(string(c.cmp))
		b.WriteString(c.rvalue.String())
		if c.hits > 0 {
			b.WriteString(".")
			b.WriteString(strconv.FormatUint(uint64(c.hits), 10))
			b.WriteString(".")
		}
	}
	return b.String()
}

// Equal reports whether both conditions have the same canonical form.
func (c Condition) Equal(other Condition) bool {
	return c.String() == other.String()
}

// Pretty returns the condition as nine display columns: flag, lvalue type,
// size and value, operator, rvalue type, size and value, hits.
func (c Condition) Pretty() [9]string {
	out := [9]string{
		string(c.flag),
		string(c.lvalue.Type),
		string(c.lvalue.Size),
		c.lvalue.Pretty(),
	}
	if c.rvalue.Defined() {
		out[4] = string(c.cmp)
		out[5] = string(c.rvalue.Type)
		out[6] = string(c.rvalue.Size)
		out[7] = c.rvalue.Pretty()
	}
	if c.hits > 0 {
		out[8] = strconv.FormatUint(uint64(c.hits), 10)
	}
	return out
}

func parseOperator(s string) (Operator, bool) {
	for _, op := range operatorTokens {
		if strings.HasPrefix(s, string(op)) {
			return op, true
		}
	}
	return OpNone, false
}

func sliceString(v any, name string) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	return "", fmt.Errorf("expected %s as string, but got %v", name, v)
}

func sliceNumber(v any, name string) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("expected %s as number, but got %v", name, v)
}
