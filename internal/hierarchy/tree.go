// Package hierarchy turns the flat, parent-referenced category list into a
// navigable forest for the POS frontend: sidebar trees, selector breadcrumbs
// and indented option lists. Everything here is a pure function over the
// input slice; the forest is rebuilt from scratch on every call and carries
// no identity across calls.
package hierarchy

import (
	"sort"
	"strings"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateID = errors.New("duplicate category id")
	ErrParentCycle = errors.New("category parent cycle")
)

// Node wraps a category with its position in the forest. Children are owned
// exclusively by their parent; Path holds ancestor ids root-to-self.
type Node struct {
	Category model.Category `json:"category"`
	Children []*Node        `json:"children"`
	Level    int            `json:"level"`
	Path     []int64        `json:"path"`
}

// Build converts a flat category list into a forest of root nodes. A category
// whose parent_id is null, or whose parent is missing from the input, becomes
// a root. Siblings are sorted ascending by sort_order, ties keeping input
// order. Duplicate ids are not rejected here (last one wins in the id index);
// Validate is the write-side guard for that and for parent cycles. Records
// that form a cycle are attached to each other and end up unreachable from
// any root, which Build tolerates silently.
func Build(categories []model.Category) []*Node {
	index := make(map[int64]*Node, len(categories))
	for _, c := range categories {
		index[c.ID] = &Node{Category: c, Path: []int64{c.ID}}
	}

	roots := make([]*Node, 0)
	for _, c := range categories {
		node := index[c.ID]
		if c.ParentID != nil {
			if parent, ok := index[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	for _, root := range roots {
		finalize(root, 0, nil)
	}
	return roots
}

// finalize assigns levels and paths top-down and sorts each children slice.
// Doing this after attachment keeps the invariants independent of input order.
func finalize(n *Node, level int, prefix []int64) {
	n.Level = level
	n.Path = append(append(make([]int64, 0, len(prefix)+1), prefix...), n.Category.ID)

	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Category.SortOrder < n.Children[j].Category.SortOrder
	})
	for _, child := range n.Children {
		finalize(child, level+1, n.Path)
	}
}

// Flatten linearizes a forest in pre-order: each node before its children,
// children in their sorted order.
func Flatten(roots []*Node) []*Node {
	out := make([]*Node, 0, len(roots))
	var walk func(*Node)
	walk = func(n *Node) {
		out = append(out, n)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}

// Find returns the node with the given id, searching depth-first across the
// forest, or nil if absent.
func Find(roots []*Node, id int64) *Node {
	for _, n := range roots {
		if n.Category.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// PathTo returns the breadcrumb chain from the containing root down to and
// including the node with the given id, or an empty slice if the id is not in
// the forest. The walk back down is driven by the target's precomputed Path.
func PathTo(roots []*Node, id int64) []*Node {
	target := Find(roots, id)
	if target == nil {
		return nil
	}

	chain := make([]*Node, 0, len(target.Path))
	level := roots
	for _, ancestorID := range target.Path {
		var next *Node
		for _, n := range level {
			if n.Category.ID == ancestorID {
				next = n
				break
			}
		}
		if next == nil {
			return nil
		}
		chain = append(chain, next)
		level = next.Children
	}
	return chain
}

// Filter prunes the forest to nodes matching the query, case-insensitively,
// against name and description. A node survives if it matches directly or if
// any descendant matches; surviving nodes keep only their surviving children.
// A blank query returns the input unchanged. The input forest is not mutated.
func Filter(roots []*Node, query string) []*Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return roots
	}

	out := make([]*Node, 0, len(roots))
	for _, n := range roots {
		if kept := filterNode(n, q); kept != nil {
			out = append(out, kept)
		}
	}
	return out
}

func filterNode(n *Node, q string) *Node {
	var kept []*Node
	for _, child := range n.Children {
		if fc := filterNode(child, q); fc != nil {
			kept = append(kept, fc)
		}
	}
	if len(kept) == 0 && !matches(&n.Category, q) {
		return nil
	}

	clone := *n
	clone.Children = kept
	return &clone
}

func matches(c *model.Category, q string) bool {
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	return c.Description != nil && strings.Contains(strings.ToLower(*c.Description), q)
}

// Option is a selector entry: the node's name indented two spaces per level,
// so a flat dropdown still reads as a hierarchy.
type Option struct {
	Value       int64  `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Options builds the forest, flattens it pre-order and renders each node as a
// label/value pair for selection widgets.
func Options(categories []model.Category) []Option {
	flat := Flatten(Build(categories))
	opts := make([]Option, len(flat))
	for i, n := range flat {
		desc := ""
		if n.Category.Description != nil {
			desc = *n.Category.Description
		}
		opts[i] = Option{
			Value:       n.Category.ID,
			Label:       strings.Repeat("  ", n.Level) + n.Category.Name,
			Description: desc,
		}
	}
	return opts
}

// Validate rejects input the tolerant read-side builder would silently
// normalize: duplicate ids and parent cycles. Dangling parent references are
// not an error (the builder treats those categories as roots).
func Validate(categories []model.Category) error {
	parents := make(map[int64]*int64, len(categories))
	for _, c := range categories {
		if _, ok := parents[c.ID]; ok {
			return errors.Wrapf(ErrDuplicateID, "id %d", c.ID)
		}
		parents[c.ID] = c.ParentID
	}

	for id := range parents {
		seen := make(map[int64]bool)
		cur := id
		for {
			if seen[cur] {
				return errors.Wrapf(ErrParentCycle, "id %d", id)
			}
			seen[cur] = true
			parent := parents[cur]
			if parent == nil {
				break
			}
			if _, ok := parents[*parent]; !ok {
				break // dangling reference, treated as root elsewhere
			}
			cur = *parent
		}
	}
	return nil
}
