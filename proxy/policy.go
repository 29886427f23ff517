package proxy

import (
	"fmt"
	"strings"
)

// Action is what the resolver does with a dependency edge while walking away
// from a "name" token.
type Action int

const (
	// Terminal edges end the walk: the dependent becomes a new focus.
	Terminal Action = iota

	// Transparent edges are walked through: the dependent is expanded in
	// turn and never becomes a focus itself.
	Transparent

	// Ignored edges contribute nothing.
	Ignored
)

func (a Action) String() string {
	switch a {
	case Transparent:
		return "transparent"
	case Ignored:
		return "ignored"
	default:
		return "terminal"
	}
}

// ParseAction converts the config name of an action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terminal":
		return Terminal, nil
	case "transparent":
		return Transparent, nil
	case "ignored", "ignore":
		return Ignored, nil
	}
	return Terminal, fmt.Errorf("unknown action %q", s)
}

// Policy maps dependency type labels to actions. Labels not in the map are
// Terminal.
type Policy map[string]Action

// DefaultPolicy walks through prepositions ("name of X") and skips
// determiners ("the name").
func DefaultPolicy() Policy {
	return Policy{
		"prep": Transparent,
		"det":  Ignored,
	}
}

// Action returns the action for the dependency label.
func (p Policy) Action(label string) Action {
	if a, ok := p[label]; ok {
		return a
	}
	return Terminal
}

// ParsePolicy builds a policy from the default one, overridden by the
// label -> action names in overrides.
func ParsePolicy(overrides map[string]string) (Policy, error) {
	p := DefaultPolicy()
	for label, name := range overrides {
		a, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", label, err)
		}
		p[label] = a
	}
	return p, nil
}
