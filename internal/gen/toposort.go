package gen

import (
	"errors"
	"fmt"
	"sort"

	"confgen/internal/schema"
	"confgen/internal/synth"
)

// topoSort returns node indices in dependency order.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must come before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. If a cycle exists, an error is returned.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		deps := depsFn(i)
		for _, d := range deps {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	sort.Ints(ready)

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("inheritance cycle detected")
	}

	return order, nil
}

// Order sorts specs so that every parent precedes its children. Specs whose
// parent is not in the list keep their relative order.
func Order(specs []*synth.TypeSpec) ([]*synth.TypeSpec, error) {
	index := make(map[*schema.Schema]int, len(specs))
	for i, s := range specs {
		index[s.Schema] = i
	}

	order, err := topoSort(len(specs), func(i int) []int {
		p := specs[i].Schema.Parent
		if p == nil {
			return nil
		}
		if j, ok := index[p]; ok {
			return []int{j}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*synth.TypeSpec, 0, len(order))
	for _, i := range order {
		out = append(out, specs[i])
	}

	return out, nil
}
