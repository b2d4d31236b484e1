package definition

import (
	"fmt"

	"achievement-manager/core/asset"
	"achievement-manager/core/condition"

	"gopkg.in/yaml.v3"
)

// Conditions decodes the conditions of an achievement.
type Conditions struct {
	Set condition.GroupSet
}

func (c *Conditions) UnmarshalYAML(n *yaml.Node) error {
	set, err := groupSetFromNode(n)
	if err != nil {
		return err
	}
	c.Set = set
	return nil
}

// LeaderboardConditions decodes the four condition sets of a leaderboard.
type LeaderboardConditions struct {
	asset.LeaderboardConditions
}

func (c *LeaderboardConditions) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		lc, err := asset.ParseLeaderboardConditions(n.Value)
		if err != nil {
			return nodeError(n, err)
		}
		c.LeaderboardConditions = lc
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return nodeError(n, fmt.Errorf("expected leaderboard conditions as string or mapping"))
	}

	sections := map[string]*condition.GroupSet{
		"start":  &c.Start,
		"cancel": &c.Cancel,
		"submit": &c.Submit,
		"value":  &c.Value,
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		dst, ok := sections[key.Value]
		if !ok {
			return nodeError(key, fmt.Errorf("unexpected leaderboard section %q", key.Value))
		}
		var opts []condition.ParseOption
		if key.Value == "value" {
			opts = append(opts, condition.LegacyValueFormat())
		}
		set, err := groupSetFromNode(value, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", key.Value, err)
		}
		*dst = set
	}
	return nil
}

func nodeError(n *yaml.Node, err error) error {
	return fmt.Errorf("line %d: %w", n.Line, err)
}

// groupSetFromNode reads a code string, a single group as a list, or named groups.
func groupSetFromNode(n *yaml.Node, opts ...condition.ParseOption) (condition.GroupSet, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		set, err := condition.ParseGroupSet(n.Value, opts...)
		if err != nil {
			return condition.GroupSet{}, nodeError(n, err)
		}
		return set, nil
	case yaml.SequenceNode:
		group, err := groupFromNode(n, 0)
		if err != nil {
			return condition.GroupSet{}, err
		}
		return condition.NewGroupSet(group), nil
	case yaml.MappingNode:
		return namedGroupsFromNode(n, opts...)
	}
	return condition.GroupSet{}, nodeError(n, fmt.Errorf("expected conditions as string, list or mapping"))
}

func namedGroupsFromNode(n *yaml.Node, opts ...condition.ParseOption) (condition.GroupSet, error) {
	byName := map[string]*yaml.Node{}
	var names []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		byName[name] = n.Content[i+1]
		names = append(names, name)
	}

	ordered, err := condition.OrderGroupNames(names)
	if err != nil {
		return condition.GroupSet{}, nodeError(n, err)
	}

	groups := make([][]condition.Condition, len(ordered))
	for i, name := range ordered {
		node := byName[name]
		if node.Kind == yaml.ScalarNode {
			set, err := condition.ParseGroupSet(node.Value, opts...)
			if err != nil {
				return condition.GroupSet{}, nodeError(node, fmt.Errorf("%s: %w", name, err))
			}
			if set.Len() != 1 {
				return condition.GroupSet{}, nodeError(node, fmt.Errorf("%s: expected a single group of conditions", name))
			}
			groups[i] = set.Group(0)
			continue
		}
		if groups[i], err = groupFromNode(node, i); err != nil {
			return condition.GroupSet{}, err
		}
	}
	return condition.NewGroupSet(groups...), nil
}

func groupFromNode(n *yaml.Node, group int) ([]condition.Condition, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nodeError(n, fmt.Errorf("%s: expected a list of conditions", condition.GroupName(group)))
	}
	conditions := make([]condition.Condition, 0, len(n.Content))
	for i, item := range n.Content {
		c, err := conditionFromNode(item)
		if err != nil {
			return nil, nodeError(item, condition.Location(group, i, err))
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

func conditionFromNode(n *yaml.Node) (condition.Condition, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return condition.Parse(n.Value)
	case yaml.SequenceNode:
		var values []any
		if err := n.Decode(&values); err != nil {
			return condition.Condition{}, err
		}
		return condition.FromSlice(values)
	case yaml.MappingNode:
		var d condition.Data
		if err := n.Decode(&d); err != nil {
			return condition.Condition{}, err
		}
		return condition.New(d)
	}
	return condition.Condition{}, fmt.Errorf("expected condition as string, array or mapping")
}
