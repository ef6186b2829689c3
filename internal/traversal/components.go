package traversal

import "github.com/latticekg/lattice/internal/graph"

// WeakComponents partitions the graph into weakly connected components,
// treating every edge as undirected. Components come out ordered by their
// first node's insertion position, members in discovery order.
func WeakComponents(s *graph.Store) [][]string {
	visited := make(map[string]bool)
	var components [][]string

	for _, node := range s.Nodes() {
		if visited[node.ID] {
			continue
		}
		var comp []string
		queue := []string{node.ID}
		visited[node.ID] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, n := range s.ConnectedNodes(cur) {
				if !visited[n.ID] {
					visited[n.ID] = true
					queue = append(queue, n.ID)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// Bridges finds the edges whose removal would disconnect their component,
// by iterative low-link analysis. Exploration follows outgoing edges only;
// bidirectional edges are not unified with their reverse here.
func Bridges(s *graph.Store) []*graph.Edge {
	bridges, _ := lowLink(s)
	return bridges
}

// ArticulationPoints finds cut vertices by the same outgoing-edge low-link
// analysis as Bridges.
func ArticulationPoints(s *graph.Store) []string {
	_, points := lowLink(s)
	return points
}

// lowLink runs an iterative discovery/low-link pass over the outgoing
// adjacency and collects bridges and articulation points in one sweep.
func lowLink(s *graph.Store) ([]*graph.Edge, []string) {
	var (
		timer   int
		disc    = make(map[string]int)
		low     = make(map[string]int)
		visited = make(map[string]bool)
		isCut   = make(map[string]bool)
		bridges []*graph.Edge
		cutOrd  []string
	)
	markCut := func(id string) {
		if !isCut[id] {
			isCut[id] = true
			cutOrd = append(cutOrd, id)
		}
	}

	type frame struct {
		id     string
		parent string
		via    *graph.Edge
		moves  []step
		next   int
	}

	for _, start := range s.Nodes() {
		if visited[start.ID] {
			continue
		}
		root := start.ID
		rootChildren := 0
		stack := []*frame{{id: root}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.next == 0 {
				if visited[f.id] {
					// Pushed twice before the first visit; the later push
					// is just a back edge from its parent.
					low[f.parent] = min(low[f.parent], disc[f.id])
					stack = stack[:len(stack)-1]
					continue
				}
				visited[f.id] = true
				disc[f.id] = timer
				low[f.id] = timer
				timer++
				if f.parent == root && f.id != root {
					rootChildren++
				}
				f.moves = forward(s, f.id, false)
			}

			if f.next < len(f.moves) {
				st := f.moves[f.next]
				f.next++
				if st.to == f.parent || st.to == f.id {
					continue
				}
				if _, ok := s.GetNode(st.to); !ok {
					continue
				}
				if visited[st.to] {
					low[f.id] = min(low[f.id], disc[st.to])
					continue
				}
				stack = append(stack, &frame{id: st.to, parent: f.id, via: st.edge})
				continue
			}

			// All children explored; propagate low to the parent frame.
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			p := stack[len(stack)-1]
			low[p.id] = min(low[p.id], low[f.id])
			if low[f.id] > disc[p.id] {
				bridges = append(bridges, f.via)
			}
			if p.id != root && low[f.id] >= disc[p.id] {
				markCut(p.id)
			}
		}

		if rootChildren >= 2 {
			markCut(root)
		}
	}
	return bridges, cutOrd
}
