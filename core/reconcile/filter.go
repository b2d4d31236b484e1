package reconcile

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"achievement-manager/core/asset"
)

// Filter decides whether an asset may be written.
type Filter func(a asset.Asset) bool

// FilterTypes lists the prefixes accepted by ParseFilter.
var FilterTypes = []string{"id", "title", "description"}

var (
	filterTypePattern = regexp.MustCompile(`^(.+?):`)
	filterIDSeparator = regexp.MustCompile(`,\s*`)
)

// ParseFilter reads filters such as "id:1,2", "title:^boss" or "description:collect".
// Title and description values are case-insensitive regular expressions.
func ParseFilter(arg string) (Filter, error) {
	m := filterTypePattern.FindStringSubmatch(arg)
	if m == nil {
		return nil, fmt.Errorf("expected filter param to start with 'type:', but got '%s'", arg)
	}
	kind := m[1]
	value := arg[len(m[0]):]

	if !slices.Contains(FilterTypes, kind) {
		return nil, fmt.Errorf("expected filter param to have correct type, but got '%s', correct types are: %s", kind, strings.Join(FilterTypes, ", "))
	}

	if strings.TrimSpace(value) == "" {
		got := "got nothing"
		if value != "" {
			got = fmt.Sprintf("got whitespace: '%s'", value)
		}
		return nil, fmt.Errorf("expected filter param to end with value, but %s", got)
	}

	if kind == "id" {
		ids := map[uint32]struct{}{}
		for _, raw := range filterIDSeparator.Split(strings.TrimSpace(value), -1) {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("expected filter id as unsigned integer, but got '%s'", raw)
			}
			ids[uint32(id)] = struct{}{}
		}
		return func(a asset.Asset) bool {
			_, ok := ids[a.ID()]
			return ok
		}, nil
	}

	re, err := regexp.Compile("(?i)" + value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s filter: %w", kind, err)
	}
	if kind == "title" {
		return func(a asset.Asset) bool { return re.MatchString(a.Title()) }, nil
	}
	return func(a asset.Asset) bool { return re.MatchString(a.Description()) }, nil
}

// ParseFilters parses every argument with ParseFilter.
func ParseFilters(args []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(args))
	for _, arg := range args {
		f, err := ParseFilter(arg)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func filtersMatch(a asset.Asset, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if f(a) {
			return true
		}
	}
	return false
}
