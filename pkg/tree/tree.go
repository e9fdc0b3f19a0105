package tree

import (
	"time"

	"tableflip.dev/planner/pkg/task"
)

// Node is a task placed in the display tree.
type Node struct {
	Task     task.Task
	Children []*Node
	Depth    int
}

// Leaf reports whether the node has no sub-tasks.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// Build nests visible under their parents. A visible task is a root when it
// has no parent or its parent is missing from all. Children always come from
// all, oldest first, so filters apply to roots only.
//
// Parent links that loop back on themselves would otherwise leave a task
// with no root above it. The first visible member of each loop becomes a
// root and the rest of the loop nests beneath it.
func Build(all, visible []task.Task) []*Node {
	if len(visible) == 0 {
		return nil
	}
	parents := make(map[string]string, len(all))
	for _, t := range all {
		parents[t.ID] = t.ParentID
	}
	children := adjacency(all)

	var roots []*Node
	covered := map[string]bool{}
	for _, t := range visible {
		if _, known := parents[t.ParentID]; !t.HasParent() || !known {
			roots = append(roots, expand(t, 0, children, map[string]bool{}))
			continue
		}
		if covered[t.ID] || !onLoop(t.ID, parents) {
			continue
		}
		root := expand(t, 0, children, map[string]bool{})
		cover(root, covered)
		roots = append(roots, root)
	}
	return roots
}

// onLoop reports whether following parent links from id leads back to id.
func onLoop(id string, parents map[string]string) bool {
	seen := map[string]bool{}
	for cur := parents[id]; cur != ""; cur = parents[cur] {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}

func cover(n *Node, ids map[string]bool) {
	ids[n.Task.ID] = true
	for _, c := range n.Children {
		cover(c, ids)
	}
}

func adjacency(all []task.Task) map[string][]task.Task {
	m := make(map[string][]task.Task)
	for _, t := range all {
		if t.HasParent() {
			m[t.ParentID] = append(m[t.ParentID], t)
		}
	}
	for id := range m {
		sortByCreatedAsc(m[id])
	}
	return m
}

func expand(t task.Task, depth int, children map[string][]task.Task, onPath map[string]bool) *Node {
	n := &Node{Task: t, Depth: depth}
	onPath[t.ID] = true
	for _, c := range children[t.ID] {
		if onPath[c.ID] {
			continue
		}
		n.Children = append(n.Children, expand(c, depth+1, children, onPath))
	}
	delete(onPath, t.ID)
	return n
}

// View is Build(all, Sort(Filter(all))).
func View(all []task.Task, opts Options, by SortOption, now time.Time) []*Node {
	return Build(all, Sort(Filter(all, opts, now), by))
}

// Row is one line of a flattened tree.
type Row struct {
	Task     task.Task
	Depth    int
	HasKids  bool
	Expanded bool
}

// Flatten walks nodes depth first. Children are emitted only for nodes
// where expanded returns true; a nil expanded opens everything.
func Flatten(nodes []*Node, expanded func(id string) bool) []Row {
	var rows []Row
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			open := expanded == nil || expanded(n.Task.ID)
			rows = append(rows, Row{Task: n.Task, Depth: n.Depth, HasKids: !n.Leaf(), Expanded: open && !n.Leaf()})
			if open {
				walk(n.Children)
			}
		}
	}
	walk(nodes)
	return rows
}

// Count returns the number of nodes in the forest.
func Count(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + Count(n.Children)
	}
	return total
}
