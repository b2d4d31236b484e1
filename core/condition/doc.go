// Package condition implements the text codec for achievement conditions.
//
// A condition is a single memory comparison evaluated by the emulator every
// frame. Conditions are written in a compact grammar:
//
//	[<flag>:]<lvalue>[<cmp><rvalue>[.<hits>.]]
//
// For example "R:0xH1234=d0xH1234" resets when the byte at 0x1234 changed
// since the previous frame, and "0xX10>=h100.5." requires the 32-bit value at
// 0x10 to be at least 256 for five frames.
//
// # Values
//
// Each side of a condition is an Operand:
//   - Memory reads: "0x<size><hex>" with an optional d/p/b/~ prefix for Delta,
//     Prior, BCD and Invert. A missing size letter means 16bit.
//   - Float memory reads: "f<size><hex>", for example "fF1234".
//   - Constants: "123", "-2" or "h1F". Negative constants wrap into the unsigned
//     32-bit range, so "-2" is stored as 4294967294.
//   - Floats: "f1.5".
//
// # Groups
//
// A GroupSet holds the Core group followed by Alt groups. In text form groups
// are separated by "S" and conditions by "_". Leaderboard values use "$" as the
// group separator and may use the legacy value format, see LegacyValueFormat.
//
// # Canonical Form
//
// Condition.String returns the canonical code form. It is the single source of
// truth for equality: two conditions are equal when their canonical strings
// are equal. Condition.Pretty returns a display form intended for reports.
//
// # Errors
//
// Errors quote the offending input and compose by prefixing, so a failure deep
// inside an achievement reads like:
//
//	Core, condition 2: rvalue: expected proper definition, but got "zzz"
//
// # Usage
//
//	c, err := condition.Parse("0xH1234=5")
//	set, err := condition.ParseGroupSet("0xH1=1S0xH2=2")
//	fmt.Println(set.String())
package condition
