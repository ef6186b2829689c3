package traversal

import "github.com/latticekg/lattice/internal/graph"

// ShortestPath returns the fewest-hop path from start to end as a node ID
// sequence including both endpoints, found by BFS over outgoing edges only.
// The second return is false when no path exists or an endpoint is unknown.
// start == end yields the single-element path.
func ShortestPath(s *graph.Store, start, end string) ([]string, bool) {
	if _, ok := s.GetNode(start); !ok {
		return nil, false
	}
	if _, ok := s.GetNode(end); !ok {
		return nil, false
	}
	if start == end {
		return []string{start}, true
	}

	parent := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, st := range forward(s, cur, false) {
			if _, seen := parent[st.to]; seen {
				continue
			}
			if _, ok := s.GetNode(st.to); !ok {
				continue
			}
			parent[st.to] = cur
			if st.to == end {
				return rebuildPath(parent, start, end), true
			}
			queue = append(queue, st.to)
		}
	}
	return nil, false
}

func rebuildPath(parent map[string]string, start, end string) []string {
	var rev []string
	for cur := end; ; cur = parent[cur] {
		rev = append(rev, cur)
		if cur == start {
			break
		}
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

// AllPaths enumerates every simple path from start to end over outgoing
// edges, each at most maxLen edges long (negative means unbounded). The
// number of paths is not bounded here; on dense graphs the caller must keep
// maxLen small to avoid combinatorial blowup.
func AllPaths(s *graph.Store, start, end string, maxLen int) [][]string {
	if _, ok := s.GetNode(start); !ok {
		return nil
	}
	if _, ok := s.GetNode(end); !ok {
		return nil
	}

	type frame struct {
		id    string
		moves []step
		next  int
	}
	var paths [][]string
	onPath := map[string]bool{start: true}
	stack := []*frame{{id: start, moves: forward(s, start, false)}}
	if start == end {
		paths = append(paths, []string{start})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.moves) {
			stack = stack[:len(stack)-1]
			delete(onPath, f.id)
			continue
		}
		st := f.moves[f.next]
		f.next++

		if onPath[st.to] {
			continue
		}
		if _, ok := s.GetNode(st.to); !ok {
			continue
		}
		// Reaching st.to uses len(stack) edges.
		if maxLen >= 0 && len(stack) > maxLen {
			continue
		}
		if st.to == end {
			path := make([]string, 0, len(stack)+1)
			for _, fr := range stack {
				path = append(path, fr.id)
			}
			paths = append(paths, append(path, end))
			continue
		}
		if maxLen >= 0 && len(stack) >= maxLen {
			continue
		}
		onPath[st.to] = true
		stack = append(stack, &frame{id: st.to, moves: forward(s, st.to, false)})
	}
	return paths
}
