package traversal

import "github.com/latticekg/lattice/internal/graph"

// DetectCycles finds directed cycles by DFS with an explicit recursion
// stack, reporting one node path per back edge found. Each path starts and
// ends with the same ID. Overlapping cycles sharing nodes can produce
// overlapping reports; no deduplication is attempted.
func DetectCycles(s *graph.Store) [][]string {
	var cycles [][]string
	done := make(map[string]bool)

	type frame struct {
		id    string
		moves []step
		next  int
	}

	for _, start := range s.Nodes() {
		if done[start.ID] {
			continue
		}
		onPath := map[string]int{start.ID: 0}
		stack := []*frame{{id: start.ID, moves: forward(s, start.ID, false)}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next >= len(f.moves) {
				stack = stack[:len(stack)-1]
				delete(onPath, f.id)
				done[f.id] = true
				continue
			}
			st := f.moves[f.next]
			f.next++

			if idx, ok := onPath[st.to]; ok {
				// Back edge: the cycle is the path suffix from st.to,
				// closed by repeating it.
				cycle := make([]string, 0, len(stack)-idx+1)
				for _, fr := range stack[idx:] {
					cycle = append(cycle, fr.id)
				}
				cycles = append(cycles, append(cycle, st.to))
				continue
			}
			if done[st.to] {
				continue
			}
			if _, ok := s.GetNode(st.to); !ok {
				continue
			}
			onPath[st.to] = len(stack)
			stack = append(stack, &frame{id: st.to, moves: forward(s, st.to, false)})
		}
	}
	return cycles
}

// TopologicalSort orders the nodes so every edge points from earlier to
// later, using Kahn's algorithm over outgoing edges. Ties break by
// insertion order. The second return is false when a cycle prevents a full
// order; the partial order emitted up to that point is returned anyway.
func TopologicalSort(s *graph.Store) ([]string, bool) {
	nodes := s.Nodes()
	indegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		indegree[n.ID] = 0
	}
	for _, n := range nodes {
		for _, st := range forward(s, n.ID, false) {
			if _, ok := indegree[st.to]; ok {
				indegree[st.to]++
			}
		}
	}

	var queue []string
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, st := range forward(s, cur, false) {
			if _, ok := indegree[st.to]; !ok {
				continue
			}
			indegree[st.to]--
			if indegree[st.to] == 0 {
				queue = append(queue, st.to)
			}
		}
	}
	return order, len(order) == len(nodes)
}

// IsBipartite reports whether the nodes admit a two-coloring with no
// outgoing edge joining two nodes of the same color. Coloring spreads by
// BFS over outgoing edges only, component by component.
func IsBipartite(s *graph.Store) bool {
	color := make(map[string]int)
	for _, start := range s.Nodes() {
		if _, ok := color[start.ID]; ok {
			continue
		}
		color[start.ID] = 0
		queue := []string{start.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, st := range forward(s, cur, false) {
				if _, ok := s.GetNode(st.to); !ok {
					continue
				}
				if c, ok := color[st.to]; ok {
					if c == color[cur] {
						return false
					}
					continue
				}
				color[st.to] = 1 - color[cur]
				queue = append(queue, st.to)
			}
		}
	}
	return true
}
