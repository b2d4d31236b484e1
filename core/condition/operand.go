package condition

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Operand is one side of a condition.
type Operand struct {
	// Type selects between memory reads, constants and floats.
	Type ValueType `yaml:"type" json:"type"`
	// Size is the memory read width. Empty for Value and Float.
	Size Size `yaml:"size" json:"size"`
	// Value holds the address for memory types, the constant for Value and the
	// number for Float.
	Value float64 `yaml:"value" json:"value"`
}

// Defined reports whether the operand is present at all.
func (o Operand) Defined() bool {
	return o.Type != TypeNone
}

const (
	maxUint32    = 0xFFFFFFFF
	minInt32     = -0x80000000
	wraparound   = 0x100000000
	minFloat     = -294967040
	maxFloat     = 4294967040
	prettyHexMin = 100000

	// previewLength bounds how much of the unparsed input an error quotes.
	previewLength = 6
)

var (
	typePattern         = regexp.MustCompile(`(?i)^(d|p|b|~)`)
	floatPattern        = regexp.MustCompile(`(?i)^f(-?\d+\.\d+)`)
	memoryPattern       = regexp.MustCompile(`(?i)^(0x|f)`)
	regularSizePattern  = regexp.MustCompile(`(?i)^([MNOPQRSTLUHWXIJGK ])`)
	extendedSizePattern = regexp.MustCompile(`(?i)^([FBHIML])`)
	hexPattern          = regexp.MustCompile(`(?i)^([\da-f]+)`)
	valueHexPattern     = regexp.MustCompile(`(?i)^(-?)h([\da-f]+)`)
	valueIntegerPattern = regexp.MustCompile(`^(-?\d+)`)
)

// parseOperand consumes one operand from the beginning of s and returns the rest.
func parseOperand(s string) (Operand, string, error) {
	o := Operand{Type: TypeMem}
	integersAllowed := true

	if m := typePattern.FindString(s); m != "" {
		o.Type = typesByPrefix[strings.ToLower(m)]
		s = s[len(m):]
		integersAllowed = false
	}

	if m := floatPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return o, s, fmt.Errorf("expected float, but got %s", quote(m[1]))
		}
		return Operand{Type: TypeFloat, Value: v}, s[len(m[0]):], nil
	}

	if m := memoryPattern.FindString(s); m != "" {
		s = s[len(m):]
		if strings.ToLower(m) == "0x" {
			if letter := regularSizePattern.FindString(s); letter != "" {
				o.Size = regularSizesByLetter[strings.ToUpper(letter)]
				s = s[len(letter):]
			} else if hexPattern.MatchString(s) {
				o.Size = Size16Bit
			} else {
				return o, s, fmt.Errorf("expected valid size specifier, but got %s", quote(preview(s)))
			}
		} else {
			letter := extendedSizePattern.FindString(s)
			if letter == "" {
				return o, s, fmt.Errorf("expected valid size specifier, but got %s", quote(preview(s)))
			}
			o.Size = extendedSizesByLetter[strings.ToUpper(letter)]
			s = s[len(letter):]
		}

		digits := hexPattern.FindString(s)
		if digits == "" {
			return o, s, fmt.Errorf("expected memory address as hex number, but got %s", quote(preview(s)))
		}
		o.Value = parseHex(digits)
		return o, s[len(digits):], nil
	}

	if integersAllowed {
		if m := valueHexPattern.FindStringSubmatch(s); m != nil {
			v := parseHex(m[2])
			if m[1] == "-" {
				v = -v
			}
			v, err := underflow(v)
			if err != nil {
				return o, s, err
			}
			return Operand{Type: TypeValue, Value: v}, s[len(m[0]):], nil
		}
		if m := valueIntegerPattern.FindString(s); m != "" {
			v, err := strconv.ParseFloat(m, 64)
			if err != nil {
				return o, s, fmt.Errorf("expected integer, but got %s", quote(m))
			}
			v, err = underflow(v)
			if err != nil {
				return o, s, err
			}
			return Operand{Type: TypeValue, Value: v}, s[len(m):], nil
		}
	}

	return o, s, fmt.Errorf("expected proper definition, but got %s", quote(preview(s)))
}

// underflow maps negative constants into the unsigned 32-bit space.
func underflow(v float64) (float64, error) {
	if v >= 0 {
		return v, nil
	}
	res := v + wraparound
	if v < minInt32 {
		return v, fmt.Errorf(
			"%s (%s) underflows into positive %s (%s), it's very unlikely you intended for that to happen",
			formatNumber(v), formatHex(v), formatNumber(res), formatHex(res),
		)
	}
	return res, nil
}

func validateOperand(o Operand, placement string) (Operand, error) {
	if !o.Type.Valid() {
		return o, fmt.Errorf("expected valid %s type, but got %s", placement, quote(string(o.Type)))
	}
	if !o.Size.Valid() {
		return o, fmt.Errorf("expected valid %s size, but got %s", placement, quote(string(o.Size)))
	}

	switch o.Type {
	case TypeValue:
		if o.Size != SizeNone {
			return o, fmt.Errorf("%s value cannot have size specified, but got %s", placement, quote(string(o.Size)))
		}
		if o.Value != math.Trunc(o.Value) {
			return o, fmt.Errorf("expected %s value to be integer, but got %s", placement, formatNumber(o.Value))
		}
		if o.Value < minInt32 || o.Value > maxUint32 {
			return o, fmt.Errorf("expected %s to be within the range of -0x80000000 .. 0xFFFFFFFF, but got %s", placement, formatNumber(o.Value))
		}
		o.Value, _ = underflow(o.Value)
	case TypeFloat:
		if o.Size != SizeNone {
			return o, fmt.Errorf("%s value cannot have size specified, but got %s", placement, quote(string(o.Size)))
		}
		if math.IsNaN(o.Value) || o.Value < minFloat || o.Value > maxFloat {
			return o, fmt.Errorf("expected %s to be within the range of %d .. %d, but got %s", placement, minFloat, maxFloat, formatNumber(o.Value))
		}
	default:
		if o.Size == SizeNone {
			return o, fmt.Errorf("expected valid %s size, but got %s", placement, quote(string(o.Size)))
		}
		if o.Value != math.Trunc(o.Value) || o.Value < 0 || o.Value > maxUint32 {
			return o, fmt.Errorf("expected %s memory address to be within the range of 0x0 .. 0xFFFFFFFF, but got %s", placement, formatNumber(o.Value))
		}
	}
	return o, nil
}

// String renders the operand in its canonical code form.
func (o Operand) String() string {
	switch o.Type {
	case TypeNone:
		return ""
	case TypeValue:
		return strconv.FormatUint(uint64(o.Value), 10)
	case TypeFloat:
		s := formatNumber(o.Value)
		if o.Value == math.Trunc(o.Value) {
			s += ".0"
		}
		return "f" + s
	}

	var b strings.Builder
	b.WriteString(typePrefixes[o.Type])
	if o.Size.IsExtended() {
		b.WriteString("f")
		b.WriteString(extendedSizeLetters[o.Size])
	} else {
		b.WriteString("0x")
		b.WriteString(regularSizeLetters[o.Size])
	}
	b.WriteString(strconv.FormatUint(uint64(o.Value), 16))
	return b.String()
}

// Pretty renders the operand value for humans: addresses in hex, small
// constants in decimal, and constants just below the 32-bit wraparound as
// negative numbers.
func (o Operand) Pretty() string {
	switch o.Type {
	case TypeNone:
		return ""
	case TypeValue:
		if diff := o.Value - wraparound; diff >= -4096 && diff < 0 {
			return formatNumber(diff)
		}
		if o.Value >= prettyHexMin {
			return formatHex(o.Value)
		}
		return formatNumber(o.Value)
	case TypeFloat:
		if o.Value >= prettyHexMin {
			return formatHex(o.Value)
		}
		return formatNumber(o.Value)
	}
	return formatHex(o.Value)
}

func parseHex(digits string) float64 {
	var v float64
	for _, r := range strings.ToLower(digits) {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		default:
			d = int(r-'a') + 10
		}
		v = v*16 + float64(d)
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatHex renders v in base 16, fractional digits included.
func formatHex(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v > math.MaxUint64 {
		return sign + "0x" + strconv.FormatFloat(v, 'x', -1, 64)
	}
	whole, frac := math.Modf(v)
	s := sign + "0x" + strconv.FormatUint(uint64(whole), 16)
	if frac == 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < 13 && frac > 0; i++ {
		frac *= 16
		d, rest := math.Modf(frac)
		b.WriteByte("0123456789abcdef"[int(d)])
		frac = rest
	}
	return s + "." + b.String()
}

func preview(s string) string {
	if len(s) > previewLength {
		return s[:previewLength]
	}
	return s
}

func quote(s string) string {
	return strconv.Quote(s)
}
