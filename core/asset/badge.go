package asset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultBadge is used when an achievement has no badge.
	DefaultBadge = "00000"
	// LocalBadgePrefix starts a badge that points to a file in the local RACache folder.
	LocalBadgePrefix = `local\\`
)

var (
	badgeDigits = regexp.MustCompile(`^\d+$`)
	badgeFile   = regexp.MustCompile(`(?i)^.+\.(png|jpe?g|gif)$`)
)

func normalizeBadge(b string) (string, error) {
	if strings.TrimSpace(b) == "" {
		return DefaultBadge, nil
	}

	if badgeDigits.MatchString(b) {
		n, err := strconv.ParseUint(b, 10, 32)
		if err != nil {
			return "", fmt.Errorf("expected badge id to be within the range of 0x0 .. 0xFFFFFFFF, but got %s", b)
		}
		return fmt.Sprintf("%05d", n), nil
	}

	pieces := strings.Split(b, `\\`)
	if len(pieces) < 2 || pieces[0] != "local" {
		return "", fmt.Errorf(`expected badge as unsigned integer or filepath starting with local\\, but got %s`, strconv.Quote(b))
	}
	for _, p := range pieces[1:] {
		if p == "" || strings.Trim(p, ".") == "" {
			return "", fmt.Errorf("encountered %s within %s, path to badge must not leave local directory", strconv.Quote(p), strconv.Quote(b))
		}
	}
	if file := pieces[len(pieces)-1]; !badgeFile.MatchString(file) {
		return "", fmt.Errorf("expected badge filename to be *.(png|jpg|jpeg|gif) but got %s", strconv.Quote(file))
	}
	return b, nil
}

// BadgeIsSet reports whether b refers to a real image: a positive server id or a local file.
func BadgeIsSet(b string) bool {
	return BadgeIsSetByID(b) || strings.HasPrefix(b, LocalBadgePrefix)
}

// BadgeIsSetByID reports whether b is a positive server badge id.
func BadgeIsSetByID(b string) bool {
	n, err := strconv.ParseUint(b, 10, 64)
	return err == nil && n > 0
}

// BadgeIsUnset reports whether the server would show no badge for b.
// Local paths are unknown to the server and count as unset.
func BadgeIsUnset(b string) bool {
	n, err := strconv.ParseUint(b, 10, 64)
	return err != nil || n == 0
}

func isLocalBadge(b string) bool {
	return strings.HasPrefix(b, LocalBadgePrefix)
}
