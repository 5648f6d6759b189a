package loom

import mapset "github.com/deckarep/golang-set/v2"

// GraphStats is a census of the connected region around some members.
type GraphStats struct {
	Mutables int // cells, derivations, bridge cells
	Watchers int // reactions and scopes
	Edges    int
}

// Stats walks outward from the given members across both edge lists and
// tallies what it finds. The visited set keeps the walk cycle-safe, so
// it is usable even on graphs carrying recursed self-edges.
func Stats(roots ...GraphAware) GraphStats {
	visited := mapset.NewThreadUnsafeSet[*node]()
	stack := make([]*node, 0, len(roots))
	for _, r := range roots {
		stack = append(stack, r.graphNode())
	}

	stats := GraphStats{}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Add(n) {
			continue
		}

		if n.flags&fWatching != 0 {
			stats.Watchers++
		} else if n.flags&fMutable != 0 {
			stats.Mutables++
		}

		for l := n.deps; l != nil; l = l.nextDep {
			stats.Edges++
			stack = append(stack, l.dep)
		}
		for l := n.subs; l != nil; l = l.nextSub {
			stack = append(stack, l.sub)
		}
	}
	return stats
}
