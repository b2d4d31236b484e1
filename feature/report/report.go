package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"
	"achievement-manager/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoChanges is printed when a report holds nothing to show.
const NoChanges = "no changes found"

var conditionHeaders = []string{"", "", "Flag", "Type", "Size", "Value", "Cmp", "Type", "Size", "Value", "Hits"}

const (
	colorAdded   = lipgloss.Color("10")
	colorRemoved = lipgloss.Color("9")
	colorMuted   = lipgloss.Color("244")
)

// Options tune the report.
type Options struct {
	// ContextLines is the number of unchanged conditions printed around each
	// changed one. Zero prints short groups in full and one line of context
	// otherwise.
	ContextLines int
}

// Printer writes reports to a single writer.
type Printer struct {
	out      io.Writer
	opts     Options
	renderer *lipgloss.Renderer

	added   lipgloss.Style
	removed lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
}

// NewPrinter creates a printer. Colors follow the capabilities of w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:      w,
		opts:     opts,
		renderer: r,
		added:    r.NewStyle().Foreground(colorAdded),
		removed:  r.NewStyle().Foreground(colorRemoved),
		muted:    r.NewStyle().Foreground(colorMuted),
		heading:  r.NewStyle().Bold(true),
	}
}

// Print writes the report and returns whether anything was shown.
func (p *Printer) Print(r reconcile.Report) (bool, error) {
	text := p.Render(r)
	shown := text != ""
	if !shown {
		text = NoChanges
	}
	_, err := io.WriteString(p.out, text+"\n")
	return shown, err
}

// Render returns the report text, empty when there is nothing to show.
func (p *Printer) Render(r reconcile.Report) string {
	var b strings.Builder

	p.titles(&b, "New achievements added:", r.NewAchievements)
	p.titles(&b, "New leaderboards added:", r.NewLeaderboards)

	var changed strings.Builder
	for _, c := range r.Changes() {
		changed.WriteString(p.Change(c))
	}
	if changed.Len() > 0 {
		b.WriteString(p.heading.Render("Assets changed:") + "\n")
		b.WriteString(changed.String())
	}

	return strings.TrimRight(b.String(), "\n")
}

func (p *Printer) titles(b *strings.Builder, header string, titles []string) {
	if len(titles) == 0 {
		return
	}
	b.WriteString(p.heading.Render(header) + "\n")
	for _, t := range titles {
		b.WriteString("  " + t + "\n")
	}
	b.WriteString("\n")
}

type headerLine struct {
	label string
	value string
}

// Change renders one updated asset, empty when nothing visible differs.
func (p *Printer) Change(c reconcile.Change) string {
	original, modified := c.Original, c.Modified

	idLabel := "A.ID"
	if modified.Kind() == asset.KindLeaderboard {
		idLabel = "L.ID"
	}
	lines := []headerLine{{idLabel, fmt.Sprintf("%d (%s)", original.ID(), c.Context)}}
	differs := false

	titleChanged := original.Title() != modified.Title()
	descriptionChanged := original.Description() != modified.Description()
	if titleChanged {
		lines = append(lines, p.changedText("Title", original.Title(), modified.Title())...)
		differs = true
	} else {
		lines = append(lines, headerLine{"Title", original.Title()})
	}
	switch {
	case descriptionChanged:
		lines = append(lines, p.changedText("Desc.", original.Description(), modified.Description())...)
		differs = true
	case titleChanged:
		lines = append(lines, headerLine{"Desc.", original.Description()})
	}

	fields := p.fieldChanges(original, modified)
	if len(fields) > 0 {
		lines = append(lines, fields...)
		differs = true
	}

	groups := p.groupDiffs(original, modified)
	if !differs && len(groups) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(p.header(l))
	}
	for _, g := range groups {
		b.WriteString(p.header(headerLine{"Code", g.name}))
		b.WriteString(p.table(g.rows) + "\n")
	}
	return b.String()
}

func (p *Printer) header(l headerLine) string {
	return strings.TrimRight(fmt.Sprintf("%6s │ %s", l.label, l.value), " ") + "\n"
}

func (p *Printer) changedText(label, before, after string) []headerLine {
	return []headerLine{
		{label, p.removed.Render("- " + before)},
		{"", p.added.Render("+ " + after)},
	}
}

func (p *Printer) changedValue(label, before, after string) headerLine {
	return headerLine{label, p.removed.Render(before) + " -> " + p.added.Render(after)}
}

func (p *Printer) fieldChanges(original, modified asset.Asset) []headerLine {
	var lines []headerLine
	switch o := original.(type) {
	case asset.Achievement:
		m, ok := modified.(asset.Achievement)
		if !ok {
			return nil
		}
		if o.Type() != m.Type() {
			lines = append(lines, p.changedValue("Type", achievementType(o.Type()), achievementType(m.Type())))
		}
		if o.Points() != m.Points() {
			lines = append(lines, p.changedValue("Pts.", strconv.Itoa(o.Points()), strconv.Itoa(m.Points())))
		}
		if o.Badge() != m.Badge() {
			lines = append(lines, p.changedValue("Badge", o.Badge(), m.Badge()))
		}
	case asset.Leaderboard:
		m, ok := modified.(asset.Leaderboard)
		if !ok {
			return nil
		}
		if o.Type() != m.Type() {
			lines = append(lines, p.changedValue("Type", string(o.Type()), string(m.Type())))
		}
		if o.LowerIsBetter() != m.LowerIsBetter() {
			lines = append(lines, p.changedValue("Low?", strconv.FormatBool(o.LowerIsBetter()), strconv.FormatBool(m.LowerIsBetter())))
		}
	}
	return lines
}

func achievementType(t asset.AchievementType) string {
	s := string(t)
	if s == "" {
		s = "none"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type groupDiff struct {
	name string
	rows []diffRow
}

func (p *Printer) groupDiffs(original, modified asset.Asset) []groupDiff {
	switch o := original.(type) {
	case asset.Achievement:
		m, ok := modified.(asset.Achievement)
		if !ok {
			return nil
		}
		return p.setDiffs("", o.Conditions(), m.Conditions())
	case asset.Leaderboard:
		m, ok := modified.(asset.Leaderboard)
		if !ok {
			return nil
		}
		oc, mc := o.Conditions(), m.Conditions()
		var out []groupDiff
		out = append(out, p.setDiffs("Start", oc.Start, mc.Start)...)
		out = append(out, p.setDiffs("Cancel", oc.Cancel, mc.Cancel)...)
		out = append(out, p.setDiffs("Submit", oc.Submit, mc.Submit)...)
		out = append(out, p.setDiffs("Value", oc.Value, mc.Value)...)
		return out
	}
	return nil
}

// setDiffs compares two group sets group by group. section is empty for
// achievements and names the leaderboard part otherwise.
func (p *Printer) setDiffs(section string, original, modified condition.GroupSet) []groupDiff {
	var out []groupDiff
	n := max(original.Len(), modified.Len())
	for i := 0; i < n; i++ {
		var rows []diffRow
		switch {
		case i >= original.Len() && len(modified.Group(i)) == 0:
			rows = []diffRow{{op: opAdd, cond: condition.Condition{}}}
		case i >= modified.Len() && len(original.Group(i)) == 0:
			rows = []diffRow{{op: opRemove, cond: condition.Condition{}}}
		default:
			rows = diffConditions(groupAt(original, i), groupAt(modified, i), p.opts.ContextLines)
		}
		if len(rows) > 0 {
			out = append(out, groupDiff{name: groupName(section, i), rows: rows})
		}
	}
	return out
}

func groupAt(set condition.GroupSet, i int) []condition.Condition {
	if i >= set.Len() {
		return nil
	}
	return set.Group(i)
}

// groupName returns "Core", "Alt 1", "Start - Core" or "Value - Alt 1".
// The leaderboard value has no core suffix.
func groupName(section string, i int) string {
	name := condition.GroupName(i)
	switch {
	case section == "":
		return name
	case i == 0 && section == "Value":
		return section
	}
	return section + " - " + name
}

func (p *Printer) table(rows []diffRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		if r.left == 0 && r.right == 0 && r.op != opGap {
			cells[i] = emptyGroupCells(r.op)
			continue
		}
		cells[i] = r.cells()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		Headers(conditionHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := p.renderer.NewStyle().PaddingRight(1)
			switch col {
			case 0, 1, 5, 9, 10:
				s = s.Align(lipgloss.Right)
			case 6:
				s = s.Align(lipgloss.Center)
			}
			if row < 0 || row >= len(rows) {
				return s
			}
			switch rows[row].op {
			case opAdd:
				return s.Inherit(p.added)
			case opRemove:
				return s.Inherit(p.removed)
			case opGap:
				return s.Inherit(p.muted)
			}
			return s
		})

	return t.String()
}

func emptyGroupCells(op rowOp) []string {
	left, right := "-", " "
	if op == opAdd {
		left, right = " ", "+"
	}
	return []string{left, right, "no conditions", "", "", "", "", "", "", "", ""}
}
