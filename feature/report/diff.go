package report

import (
	"strconv"

	"achievement-manager/core/condition"

	"github.com/pmezard/go-difflib/difflib"
)

// MaxContextLines caps Options.ContextLines.
const MaxContextLines = 10

// shortGroup is the largest group printed in full without context lines.
const shortGroup = 10

const gapMarker = "······"

type rowOp byte

const (
	opEqual  rowOp = ' '
	opAdd    rowOp = '+'
	opRemove rowOp = '-'
	opGap    rowOp = '.'
)

// diffRow is one condition of a group diff. left and right are one-based
// positions in the original and modified group, zero when absent.
type diffRow struct {
	op    rowOp
	left  int
	right int
	cond  condition.Condition
}

func (r diffRow) cells() []string {
	if r.op == opGap {
		return []string{gapMarker, "", "", "", "", "", "", "", "", "", ""}
	}
	left, right := strconv.Itoa(r.left), strconv.Itoa(r.right)
	switch r.op {
	case opAdd:
		left = "+"
	case opRemove:
		right = "-"
	}
	pretty := r.cond.Pretty()
	return append([]string{left, right}, pretty[:]...)
}

// diffConditions compares two condition groups. It returns nil when they are
// equal.
func diffConditions(original, modified []condition.Condition, contextLines int) []diffRow {
	a := make([]string, len(original))
	for i, c := range original {
		a[i] = c.String()
	}
	b := make([]string, len(modified))
	for i, c := range modified {
		b[i] = c.String()
	}

	var rows []diffRow
	var changed []int
	left, right := 0, 0
	for _, oc := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch oc.Tag {
		case 'e':
			for i := oc.I1; i < oc.I2; i++ {
				left++
				right++
				rows = append(rows, diffRow{op: opEqual, left: left, right: right, cond: original[i]})
			}
			continue
		case 'd', 'r':
			for i := oc.I1; i < oc.I2; i++ {
				left++
				changed = append(changed, len(rows))
				rows = append(rows, diffRow{op: opRemove, left: left, cond: original[i]})
			}
		}
		if oc.Tag == 'i' || oc.Tag == 'r' {
			for j := oc.J1; j < oc.J2; j++ {
				right++
				changed = append(changed, len(rows))
				rows = append(rows, diffRow{op: opAdd, right: right, cond: modified[j]})
			}
		}
	}
	if len(changed) == 0 {
		return nil
	}

	if len(rows) > shortGroup || contextLines > 0 {
		rows = withContext(rows, changed, contextLines)
	}
	return withGaps(rows)
}

// withContext keeps changed rows and n rows around each of them.
func withContext(rows []diffRow, changed []int, n int) []diffRow {
	if n <= 0 {
		n = 1
	}
	if n > MaxContextLines {
		n = MaxContextLines
	}

	keep := make([]bool, len(rows))
	for _, idx := range changed {
		for i := idx - n; i <= idx+n; i++ {
			if i >= 0 && i < len(rows) {
				keep[i] = true
			}
		}
	}

	out := make([]diffRow, 0, len(rows))
	for i, r := range rows {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}

// withGaps marks skipped unchanged conditions between two kept rows.
func withGaps(rows []diffRow) []diffRow {
	out := make([]diffRow, 0, len(rows))
	for i, r := range rows {
		if i > 0 {
			prev := rows[i-1]
			if prev.left > 0 && prev.right > 0 && r.left > 0 && r.right > 0 &&
				r.left-prev.left > 1 && r.right-prev.right > 1 {
				out = append(out, diffRow{op: opGap})
			}
		}
		out = append(out, r)
	}
	return out
}
