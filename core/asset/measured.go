package asset

import (
	"errors"
	"fmt"

	"achievement-manager/core/condition"
)

// validateMeasured rejects Measured conditions that cannot produce a value:
// a bare Measured, or a Measured that uses a calculation operator.
func validateMeasured(set condition.GroupSet) error {
	var err error
	set.Each(func(group, index int, c condition.Condition) {
		if err != nil || c.Flag() != condition.FlagMeasured {
			return
		}
		switch {
		case !c.RValue().Defined():
			err = condition.Location(group, index, errors.New("cannot have Measured condition without rvalue specified"))
		case c.Cmp().IsCalculation():
			err = condition.Location(group, index, fmt.Errorf("expected comparison operator (= != < <= > >=), but got %q", string(c.Cmp())))
		}
	})
	return err
}

type flagPosition struct {
	flag  condition.Flag
	group int
	index int
}

func (p flagPosition) String() string {
	return fmt.Sprintf("%s, condition %d", condition.GroupName(p.group), p.index+1)
}

// validateMeasuredMixing rejects sets that use both Measured and Measured%.
func validateMeasuredMixing(set condition.GroupSet) error {
	var first, conflict *flagPosition
	set.Each(func(group, index int, c condition.Condition) {
		if conflict != nil {
			return
		}
		f := c.Flag()
		if f != condition.FlagMeasured && f != condition.FlagMeasuredPercent {
			return
		}
		pos := &flagPosition{flag: f, group: group, index: index}
		if first == nil {
			first = pos
		} else if first.flag != f {
			conflict = pos
		}
	})
	if conflict == nil {
		return nil
	}
	return fmt.Errorf(
		"%s: %s conflicts with %s %s, make sure you exclusively use Measured or Measured%%",
		first, first.flag, conflict, conflict.flag,
	)
}

// validateNoMeasuredPercent rejects Measured% anywhere in the set.
func validateNoMeasuredPercent(set condition.GroupSet) error {
	var err error
	set.Each(func(group, index int, c condition.Condition) {
		if err == nil && c.Flag() == condition.FlagMeasuredPercent {
			err = condition.Location(group, index, errors.New("Measured% conditions are not allowed in leaderboards"))
		}
	})
	return err
}

// injectMeasured makes sure every group of a leaderboard value has a Measured
// condition by flagging the first flagless condition of groups that lack one.
func injectMeasured(set condition.GroupSet) (condition.GroupSet, error) {
	groups := set.Groups()
	for i, group := range groups {
		hasMeasured := false
		for _, c := range group {
			if c.Flag() == condition.FlagMeasured {
				hasMeasured = true
				break
			}
		}
		if hasMeasured {
			continue
		}
		for j, c := range group {
			if c.Flag() != condition.FlagNone {
				continue
			}
			measured, err := c.With(func(d *condition.Data) { d.Flag = condition.FlagMeasured })
			if err != nil {
				return set, condition.Location(i, j, err)
			}
			group[j] = measured
			break
		}
	}
	return condition.NewGroupSet(groups...), nil
}
