// Package rules provides ordered, named rule chains used by the extractors.
// A chain evaluates its rules in order and stops at the first match, so the
// order of a chain is part of its behaviour.
package rules

// Rule is one named heuristic. Match returns ok=false to pass.
type Rule[In, Out any] struct {
	Name  string
	Match func(In) (Out, bool)
}

type Chain[In, Out any] []Rule[In, Out]

// First runs the rules in order and returns the first match together with
// the name of the rule that produced it.
func (c Chain[In, Out]) First(in In) (out Out, rule string, ok bool) {
	for _, r := range c {
		if v, matched := r.Match(in); matched {
			return v, r.Name, true
		}
	}
	return out, "", false
}

// Names lists rule names in evaluation order.
func (c Chain[In, Out]) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}

// Lookup returns the rule with the given name.
func (c Chain[In, Out]) Lookup(name string) (Rule[In, Out], bool) {
	for _, r := range c {
		if r.Name == name {
			return r, true
		}
	}
	return Rule[In, Out]{}, false
}
