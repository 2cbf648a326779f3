package hierarchy

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/nivapos/catalog-service/internal/model"
)

// genCategories draws an acyclic category list with unique ids. Parents are
// drawn from earlier ids (or none), with an occasional dangling reference to
// exercise the missing-parent normalization. Input order is then shuffled so
// nothing depends on parents preceding children.
func genCategories(t *rapid.T) []model.Category {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	cats := make([]model.Category, n)
	for i := 0; i < n; i++ {
		c := model.Category{
			ID:        int64(i + 1),
			Name:      rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "name"),
			SortOrder: rapid.IntRange(0, 5).Draw(t, "order"),
			IsActive:  true,
		}
		switch {
		case i > 0 && rapid.Float64Range(0, 1).Draw(t, "hasParent") < 0.7:
			parent := int64(rapid.IntRange(1, i).Draw(t, "parent"))
			c.ParentID = &parent
		case rapid.Float64Range(0, 1).Draw(t, "dangling") < 0.1:
			missing := int64(n + 1000)
			c.ParentID = &missing
		}
		cats[i] = c
	}

	perm := rapid.Permutation(cats).Draw(t, "perm")
	return perm
}

func TestFlattenPreservesEveryCategory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cats := genCategories(t)
		flat := Flatten(Build(cats))
		if len(flat) != len(cats) {
			t.Fatalf("flatten returned %d nodes for %d categories", len(flat), len(cats))
		}

		seen := make(map[int64]bool, len(flat))
		for _, n := range flat {
			if seen[n.Category.ID] {
				t.Fatalf("id %d emitted twice", n.Category.ID)
			}
			seen[n.Category.ID] = true
		}
	})
}

func TestLevelAndPathInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cats := genCategories(t)
		roots := Build(cats)

		var walk func(n *Node, parent *Node)
		walk = func(n *Node, parent *Node) {
			if parent == nil {
				if n.Level != 0 {
					t.Fatalf("root %d has level %d", n.Category.ID, n.Level)
				}
				if len(n.Path) != 1 || n.Path[0] != n.Category.ID {
					t.Fatalf("root %d has path %v", n.Category.ID, n.Path)
				}
			} else {
				if n.Level != parent.Level+1 {
					t.Fatalf("node %d level %d, parent level %d", n.Category.ID, n.Level, parent.Level)
				}
				if len(n.Path) != len(parent.Path)+1 || n.Path[len(n.Path)-1] != n.Category.ID {
					t.Fatalf("node %d path %v, parent path %v", n.Category.ID, n.Path, parent.Path)
				}
				for i, pid := range parent.Path {
					if n.Path[i] != pid {
						t.Fatalf("node %d path %v does not extend parent path %v", n.Category.ID, n.Path, parent.Path)
					}
				}
			}
			for i, child := range n.Children {
				if i > 0 && n.Children[i-1].Category.SortOrder > child.Category.SortOrder {
					t.Fatalf("children of %d not sorted by sort_order", n.Category.ID)
				}
				walk(child, n)
			}
		}
		for _, root := range roots {
			walk(root, nil)
		}
	})
}

func TestPathToReachesTargetFromRoot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cats := genCategories(t)
		roots := Build(cats)

		if len(cats) == 0 {
			if got := PathTo(roots, 1); len(got) != 0 {
				t.Fatalf("expected empty chain, got %d nodes", len(got))
			}
			return
		}

		target := rapid.SampledFrom(cats).Draw(t, "target")
		chain := PathTo(roots, target.ID)
		if len(chain) == 0 {
			t.Fatalf("no chain for present id %d", target.ID)
		}
		if chain[len(chain)-1].Category.ID != target.ID {
			t.Fatalf("chain ends at %d, want %d", chain[len(chain)-1].Category.ID, target.ID)
		}
		if chain[0].Level != 0 {
			t.Fatalf("chain starts at level %d", chain[0].Level)
		}

		absent := int64(len(cats) + 5000)
		if got := PathTo(roots, absent); len(got) != 0 {
			t.Fatalf("absent id returned %d nodes", len(got))
		}
	})
}

func TestFilterKeepsOnlyJustifiedNodes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cats := genCategories(t)
		roots := Build(cats)
		query := rapid.StringMatching(`[a-z]{1,3}`).Draw(t, "query")

		filtered := Filter(roots, query)

		var check func(n *Node)
		check = func(n *Node) {
			if !matches(&n.Category, query) && len(n.Children) == 0 {
				t.Fatalf("node %d kept without match or surviving children", n.Category.ID)
			}
			for _, child := range n.Children {
				check(child)
			}
		}
		for _, n := range filtered {
			check(n)
		}
	})
}
