package orchestration

import "github.com/agbru/recipsum/internal/reciprocal"

// GetStrategiesToRun returns the strategy called name, or every registered
// strategy in name order when name is "all". Unknown names yield nil.
func GetStrategiesToRun(name string, factory reciprocal.StrategyFactory) []reciprocal.Summer {
	if name == "all" {
		keys := factory.List()
		strategies := make([]reciprocal.Summer, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				strategies = append(strategies, s)
			}
		}
		return strategies
	}
	if s, err := factory.Get(name); err == nil {
		return []reciprocal.Summer{s}
	}
	return nil
}

// withBaseline returns strategies with the sequential strategy first,
// adding it when absent. Every other strategy keeps its relative order.
func withBaseline(strategies []reciprocal.Summer) []reciprocal.Summer {
	out := make([]reciprocal.Summer, 0, len(strategies)+1)
	var baseline reciprocal.Summer = reciprocal.Sequential{}
	for _, s := range strategies {
		if s.Name() == reciprocal.NameSequential {
			baseline = s
			continue
		}
		out = append(out, s)
	}
	return append([]reciprocal.Summer{baseline}, out...)
}
