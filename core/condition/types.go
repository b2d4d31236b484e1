package condition

import "strings"

// Flag is the optional prefix of a condition that changes how it is evaluated.
type Flag string

const (
	FlagNone            Flag = ""
	FlagPauseIf         Flag = "PauseIf"
	FlagResetIf         Flag = "ResetIf"
	FlagResetNextIf     Flag = "ResetNextIf"
	FlagAddHits         Flag = "AddHits"
	FlagSubHits         Flag = "SubHits"
	FlagAndNext         Flag = "AndNext"
	FlagOrNext          Flag = "OrNext"
	FlagMeasured        Flag = "Measured"
	FlagMeasuredPercent Flag = "Measured%"
	FlagMeasuredIf      Flag = "MeasuredIf"
	FlagTrigger         Flag = "Trigger"
	FlagAddSource       Flag = "AddSource"
	FlagSubSource       Flag = "SubSource"
	FlagAddAddress      Flag = "AddAddress"
)

var flagLetters = map[Flag]string{
	FlagPauseIf:         "P",
	FlagResetIf:         "R",
	FlagResetNextIf:     "Z",
	FlagAddHits:         "C",
	FlagSubHits:         "D",
	FlagAndNext:         "N",
	FlagOrNext:          "O",
	FlagMeasured:        "M",
	FlagMeasuredPercent: "G",
	FlagMeasuredIf:      "Q",
	FlagTrigger:         "T",
	FlagAddSource:       "A",
	FlagSubSource:       "B",
	FlagAddAddress:      "I",
}

var flagsByLetter = invert(flagLetters)

// Valid reports whether f is one of the known flags, including FlagNone.
func (f Flag) Valid() bool {
	if f == FlagNone {
		return true
	}
	_, ok := flagLetters[f]
	return ok
}

// IsCalculation reports whether the flag accumulates a value instead of comparing one.
func (f Flag) IsCalculation() bool {
	return f == FlagAddSource || f == FlagSubSource || f == FlagAddAddress
}

// Letter returns the single-letter code written before the colon.
func (f Flag) Letter() string {
	return flagLetters[f]
}

// ValueType is the kind of operand: a memory read, a constant or a float.
type ValueType string

const (
	TypeNone   ValueType = ""
	TypeMem    ValueType = "Mem"
	TypeDelta  ValueType = "Delta"
	TypePrior  ValueType = "Prior"
	TypeBCD    ValueType = "BCD"
	TypeInvert ValueType = "Invert"
	TypeValue  ValueType = "Value"
	TypeFloat  ValueType = "Float"
)

var typePrefixes = map[ValueType]string{
	TypeMem:    "",
	TypeDelta:  "d",
	TypePrior:  "p",
	TypeBCD:    "b",
	TypeInvert: "~",
}

var typesByPrefix = map[string]ValueType{
	"d": TypeDelta,
	"p": TypePrior,
	"b": TypeBCD,
	"~": TypeInvert,
}

// Valid reports whether t is a known type. TypeNone is valid only for an absent rvalue.
func (t ValueType) Valid() bool {
	if t == TypeValue || t == TypeFloat {
		return true
	}
	_, ok := typePrefixes[t]
	return ok
}

// IsMemory reports whether the operand reads memory and therefore needs a size.
func (t ValueType) IsMemory() bool {
	_, ok := typePrefixes[t]
	return ok
}

// Size is the width used to read a memory operand.
type Size string

const (
	SizeNone     Size = ""
	SizeBit0     Size = "Bit0"
	SizeBit1     Size = "Bit1"
	SizeBit2     Size = "Bit2"
	SizeBit3     Size = "Bit3"
	SizeBit4     Size = "Bit4"
	SizeBit5     Size = "Bit5"
	SizeBit6     Size = "Bit6"
	SizeBit7     Size = "Bit7"
	SizeLower4   Size = "Lower4"
	SizeUpper4   Size = "Upper4"
	Size8Bit     Size = "8bit"
	Size16Bit    Size = "16bit"
	Size24Bit    Size = "24bit"
	Size32Bit    Size = "32bit"
	Size16BitBE  Size = "16bitBE"
	Size24BitBE  Size = "24bitBE"
	Size32BitBE  Size = "32bitBE"
	SizeBitCount Size = "BitCount"

	SizeFloat      Size = "Float"
	SizeFloatBE    Size = "FloatBE"
	SizeDouble32   Size = "Double32"
	SizeDouble32BE Size = "Double32BE"
	SizeMBF32      Size = "MBF32"
	SizeMBF32LE    Size = "MBF32LE"
)

// regularSizeLetters follow the 0x prefix. 16bit is written as a space, or
// omitted entirely when a hex digit follows 0x directly.
var regularSizeLetters = map[Size]string{
	SizeBit0:     "M",
	SizeBit1:     "N",
	SizeBit2:     "O",
	SizeBit3:     "P",
	SizeBit4:     "Q",
	SizeBit5:     "R",
	SizeBit6:     "S",
	SizeBit7:     "T",
	SizeLower4:   "L",
	SizeUpper4:   "U",
	Size8Bit:     "H",
	Size16Bit:    " ",
	Size24Bit:    "W",
	Size32Bit:    "X",
	Size16BitBE:  "I",
	Size24BitBE:  "J",
	Size32BitBE:  "G",
	SizeBitCount: "K",
}

// extendedSizeLetters follow the f prefix.
var extendedSizeLetters = map[Size]string{
	SizeFloat:      "F",
	SizeFloatBE:    "B",
	SizeDouble32:   "H",
	SizeDouble32BE: "I",
	SizeMBF32:      "M",
	SizeMBF32LE:    "L",
}

var (
	regularSizesByLetter  = invert(regularSizeLetters)
	extendedSizesByLetter = invert(extendedSizeLetters)
)

// Valid reports whether s is a known size or SizeNone.
func (s Size) Valid() bool {
	if s == SizeNone {
		return true
	}
	_, regular := regularSizeLetters[s]
	_, extended := extendedSizeLetters[s]
	return regular || extended
}

// IsExtended reports whether the size is written after the f prefix.
func (s Size) IsExtended() bool {
	_, ok := extendedSizeLetters[s]
	return ok
}

// Operator is either a comparison or a calculation operator.
type Operator string

const (
	OpNone         Operator = ""
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpMultiply     Operator = "*"
	OpDivide       Operator = "/"
	OpBitwiseAnd   Operator = "&"
	OpBitwiseXor   Operator = "^"
)

// operatorTokens is ordered so that two-character operators are tried first.
var operatorTokens = []Operator{
	OpNotEqual, OpLessEqual, OpGreaterEqual,
	OpEqual, OpLess, OpGreater,
	OpMultiply, OpDivide, OpBitwiseAnd, OpBitwiseXor,
}

// IsComparison reports whether o compares two operands.
func (o Operator) IsComparison() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// IsCalculation reports whether o combines two operands into a value.
func (o Operator) IsCalculation() bool {
	switch o {
	case OpMultiply, OpDivide, OpBitwiseAnd, OpBitwiseXor:
		return true
	}
	return false
}

// Valid reports whether o is a known operator or OpNone.
func (o Operator) Valid() bool {
	return o == OpNone || o.IsComparison() || o.IsCalculation()
}

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[strings.ToUpper(v)] = k
	}
	return out
}
