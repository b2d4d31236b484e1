package cachefile

import (
	"errors"
	"fmt"
	"strings"

	"achievement-manager/core/asset"
)

const (
	// DefaultVersion is written when there is no previous file to echo.
	DefaultVersion = "1.0"
	// DefaultEOL is used when there is no previous file to copy the line ending from.
	DefaultEOL = "\n"

	codeNotePrefix = "N0:"
)

// EntryType classifies a line after the two header lines.
type EntryType int

const (
	EntryEmpty EntryType = iota
	EntryCodeNote
	EntryAchievement
	EntryLeaderboard
	EntryInvalid
)

func (t EntryType) String() string {
	switch t {
	case EntryEmpty:
		return "empty"
	case EntryCodeNote:
		return "codenote"
	case EntryAchievement:
		return "achievement"
	case EntryLeaderboard:
		return "leaderboard"
	}
	return "invalid"
}

// Entry is one body line of the local file.
type Entry struct {
	// Type tells how the line was read.
	Type EntryType
	// Line is the raw text without the line terminator.
	Line string
	// Number is the one-based line number in the file.
	Number int
	// Asset is set for achievement and leaderboard entries.
	Asset asset.Asset
	// Err is set for invalid entries.
	Err error
}

// File is a parsed local cache file.
type File struct {
	// EOL is the line terminator the file was written with.
	EOL string
	// Version is the first line, echoed back untouched.
	Version string
	// Title is the second line, echoed back untouched.
	Title string
	// Entries holds every following line in file order.
	Entries []Entry
}

// ParseOptions controls how strictly Parse treats broken lines.
type ParseOptions struct {
	// Strict fails on the first line that is not a valid asset.
	// Otherwise such lines become EntryInvalid.
	Strict bool
}

var errNoTitle = errors.New("expected a title in local file on line 2 but got none")

// Parse reads the content of a local cache file.
func Parse(content string, opts ParseOptions) (*File, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, errNoTitle
	}

	f := &File{
		EOL:     detectEOL(content),
		Version: lines[0],
		Title:   lines[1],
		Entries: make([]Entry, 0, len(lines)-2),
	}

	for i, line := range lines[2:] {
		entry := Entry{Line: line, Number: i + 3}
		switch {
		case strings.TrimSpace(line) == "":
			entry.Type = EntryEmpty
		case strings.HasPrefix(line, codeNotePrefix):
			entry.Type = EntryCodeNote
		default:
			a, err := parseAsset(line)
			if err != nil {
				if opts.Strict {
					return nil, fmt.Errorf("line %d: %w", entry.Number, err)
				}
				entry.Type = EntryInvalid
				entry.Err = err
				break
			}
			entry.Asset = a
			entry.Type = EntryAchievement
			if a.Kind() == asset.KindLeaderboard {
				entry.Type = EntryLeaderboard
			}
		}
		f.Entries = append(f.Entries, entry)
	}

	return f, nil
}

func parseAsset(line string) (asset.Asset, error) {
	if strings.HasPrefix(line, "L") {
		return asset.ParseLeaderboard(line)
	}
	return asset.ParseAchievement(line)
}

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func detectEOL(content string) string {
	if i := strings.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return DefaultEOL
}

// Assets returns the parsed assets in file order.
func (f *File) Assets() []asset.Asset {
	var out []asset.Asset
	for _, e := range f.Entries {
		if e.Asset != nil {
			out = append(out, e.Asset)
		}
	}
	return out
}

// Invalid returns the entries that failed to parse.
func (f *File) Invalid() []Entry {
	var out []Entry
	for _, e := range f.Entries {
		if e.Type == EntryInvalid {
			out = append(out, e)
		}
	}
	return out
}

// CodeNotes returns the raw code note lines in file order.
func (f *File) CodeNotes() []string {
	var out []string
	for _, e := range f.Entries {
		if e.Type == EntryCodeNote {
			out = append(out, e.Line)
		}
	}
	return out
}

// Render produces a complete file: version, title and lines, each line
// terminated by eol. Empty version and eol fall back to the defaults.
func Render(version, title, eol string, lines []string) string {
	if version == "" {
		version = DefaultVersion
	}
	if eol == "" {
		eol = DefaultEOL
	}

	var b strings.Builder
	for _, line := range append([]string{version, title}, lines...) {
		b.WriteString(line)
		b.WriteString(eol)
	}
	return b.String()
}
