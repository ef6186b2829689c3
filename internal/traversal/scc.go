package traversal

import "github.com/latticekg/lattice/internal/graph"

// StronglyConnectedComponents partitions the nodes into maximal sets that
// are mutually reachable over directed paths, using Kosaraju's two passes:
// an iterative postorder over outgoing edges builds the finish stack, then
// a sweep over incoming edges in reverse finish order peels off one
// component per unvisited stack entry. Every node lands in exactly one
// component.
func StronglyConnectedComponents(s *graph.Store) [][]string {
	nodes := s.Nodes()

	// Pass 1: finish order by iterative postorder DFS.
	finish := make([]string, 0, len(nodes))
	visited := make(map[string]bool, len(nodes))

	type frame struct {
		id    string
		moves []step
		next  int
	}
	for _, start := range nodes {
		if visited[start.ID] {
			continue
		}
		visited[start.ID] = true
		stack := []*frame{{id: start.ID, moves: forward(s, start.ID, false)}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next >= len(f.moves) {
				finish = append(finish, f.id)
				stack = stack[:len(stack)-1]
				continue
			}
			st := f.moves[f.next]
			f.next++
			if visited[st.to] {
				continue
			}
			if _, ok := s.GetNode(st.to); !ok {
				continue
			}
			visited[st.to] = true
			stack = append(stack, &frame{id: st.to, moves: forward(s, st.to, false)})
		}
	}

	// Pass 2: walk the transpose in reverse finish order.
	assigned := make(map[string]bool, len(nodes))
	var components [][]string
	for i := len(finish) - 1; i >= 0; i-- {
		root := finish[i]
		if assigned[root] {
			continue
		}
		var comp []string
		stack := []string{root}
		assigned[root] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, e := range s.IncomingEdges(cur) {
				prev := e.SourceID
				if assigned[prev] {
					continue
				}
				if _, ok := s.GetNode(prev); !ok {
					continue
				}
				assigned[prev] = true
				stack = append(stack, prev)
			}
		}
		components = append(components, comp)
	}
	return components
}
