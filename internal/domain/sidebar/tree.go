package sidebar

import (
	"cmp"
	"slices"
)

const noParent = -1

// MenuNode is a MenuOption placed in the navigation tree. Children are owned
// by the node and ordered by Option.Order, ties kept in input order.
type MenuNode struct {
	Option   MenuOption
	Children []*MenuNode
}

// BuildTree turns a flat parent-pointer list into an ordered forest.
//
// Every input option appears exactly once in the result. Options whose parent
// is missing, equals its own id, or sits on a parent cycle are placed at
// the top level instead of being dropped. When ids are duplicated the last
// occurrence is the one children attach to. The input is never modified.
func BuildTree(options []MenuOption) []*MenuNode {
	n := len(options)
	arena := make([]MenuNode, n)
	index := make(map[string]int, n)
	for i, opt := range options {
		arena[i].Option = opt.clone()
		index[opt.ID] = i
	}

	parent := make([]int, n)
	children := make([][]int, n)
	for i, opt := range options {
		parent[i] = noParent
		if opt.ParentID == nil || *opt.ParentID == opt.ID {
			continue
		}
		p, ok := index[*opt.ParentID]
		if !ok {
			continue
		}
		parent[i] = p
		children[p] = append(children[p], i)
	}

	detachCycles(parent, children)

	roots := make([]*MenuNode, 0)
	for i := range arena {
		kids := make([]*MenuNode, 0, len(children[i]))
		for _, c := range children[i] {
			kids = append(kids, &arena[c])
		}
		sortByOrder(kids)
		arena[i].Children = kids
		if parent[i] == noParent {
			roots = append(roots, &arena[i])
		}
	}
	sortByOrder(roots)
	return roots
}

// detachCycles breaks every parent cycle by promoting one of its members to
// the top level: the one that came first in the input. Nodes hanging off a
// cycle keep their parent. Only cycles longer than one hop get here, since
// self references are dropped while linking.
func detachCycles(parent []int, children [][]int) {
	reachable := make([]bool, len(parent))
	stack := make([]int, 0, len(parent))
	mark := func(from int) {
		stack = append(stack[:0], from)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reachable[cur] {
				continue
			}
			reachable[cur] = true
			stack = append(stack, children[cur]...)
		}
	}

	for i, p := range parent {
		if p == noParent {
			mark(i)
		}
	}
	for i := range parent {
		if reachable[i] {
			continue
		}
		head := cycleHead(parent, i)
		p := parent[head]
		children[p] = slices.DeleteFunc(children[p], func(c int) bool { return c == head })
		parent[head] = noParent
		mark(head)
	}
}

// cycleHead follows parent links from an unreachable node until it loops and
// returns the lowest index on that loop.
func cycleHead(parent []int, from int) int {
	seen := make(map[int]struct{})
	cur := from
	for {
		if _, ok := seen[cur]; ok {
			break
		}
		seen[cur] = struct{}{}
		cur = parent[cur]
	}
	head := cur
	for n := parent[cur]; n != cur; n = parent[n] {
		head = min(head, n)
	}
	return head
}

func sortByOrder(nodes []*MenuNode) {
	slices.SortStableFunc(nodes, func(a, b *MenuNode) int {
		return cmp.Compare(a.Option.Order, b.Option.Order)
	})
}

// Walk visits nodes depth-first in display order. Returning false from fn
// skips the node's children.
func Walk(nodes []*MenuNode, fn func(node *MenuNode, depth int) bool) {
	var visit func(level []*MenuNode, depth int)
	visit = func(level []*MenuNode, depth int) {
		for _, node := range level {
			if fn(node, depth) {
				visit(node.Children, depth+1)
			}
		}
	}
	visit(nodes, 0)
}

// Count returns the number of nodes in the forest
func Count(nodes []*MenuNode) int {
	total := 0
	Walk(nodes, func(*MenuNode, int) bool {
		total++
		return true
	})
	return total
}

// Prune returns a copy of the forest keeping only nodes for which keep
// returns true. A rejected node hides its whole subtree.
func Prune(nodes []*MenuNode, keep func(MenuOption) bool) []*MenuNode {
	out := make([]*MenuNode, 0, len(nodes))
	for _, node := range nodes {
		if !keep(node.Option) {
			continue
		}
		out = append(out, &MenuNode{
			Option:   node.Option,
			Children: Prune(node.Children, keep),
		})
	}
	return out
}
