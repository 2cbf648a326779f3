package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivapos/catalog-service/internal/model"
)

func cat(id int64, name string, parent *int64, order int) model.Category {
	return model.Category{
		ID:        id,
		Name:      name,
		ParentID:  parent,
		SortOrder: order,
		IsActive:  true,
	}
}

func catDesc(id int64, name, desc string, parent *int64, order int) model.Category {
	c := cat(id, name, parent, order)
	c.Description = &desc
	return c
}

func id(v int64) *int64 { return &v }

// The drinks/snacks fixture: Drinks > Soda, plus a root Snacks.
func sampleCategories() []model.Category {
	return []model.Category{
		cat(1, "Drinks", nil, 0),
		cat(2, "Soda", id(1), 0),
		cat(3, "Snacks", nil, 1),
	}
}

func TestBuild_Forest(t *testing.T) {
	roots := Build(sampleCategories())
	require.Len(t, roots, 2)

	drinks, snacks := roots[0], roots[1]
	assert.Equal(t, "Drinks", drinks.Category.Name)
	assert.Equal(t, 0, drinks.Level)
	assert.Equal(t, []int64{1}, drinks.Path)

	require.Len(t, drinks.Children, 1)
	soda := drinks.Children[0]
	assert.Equal(t, "Soda", soda.Category.Name)
	assert.Equal(t, 1, soda.Level)
	assert.Equal(t, []int64{1, 2}, soda.Path)

	assert.Equal(t, "Snacks", snacks.Category.Name)
	assert.Empty(t, snacks.Children)
}

func TestBuild_EmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]model.Category{}))
}

func TestBuild_DanglingParentBecomesRoot(t *testing.T) {
	roots := Build([]model.Category{
		cat(1, "Orphan", id(999), 0),
		cat(2, "Root", nil, 1),
	})
	require.Len(t, roots, 2)
	assert.Equal(t, "Orphan", roots[0].Category.Name)
	assert.Equal(t, 0, roots[0].Level)
	assert.Equal(t, []int64{1}, roots[0].Path)
}

func TestBuild_SortsChildrenBySortOrder(t *testing.T) {
	roots := Build([]model.Category{
		cat(1, "Root", nil, 0),
		cat(2, "Third", id(1), 30),
		cat(3, "First", id(1), 10),
		cat(4, "Second", id(1), 20),
	})
	require.Len(t, roots, 1)
	names := make([]string, 0, 3)
	for _, child := range roots[0].Children {
		names = append(names, child.Category.Name)
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, names)
}

func TestBuild_SortIsStableOnTies(t *testing.T) {
	roots := Build([]model.Category{
		cat(1, "Root", nil, 0),
		cat(2, "A", id(1), 5),
		cat(3, "B", id(1), 5),
		cat(4, "C", id(1), 5),
	})
	require.Len(t, roots, 1)
	names := make([]string, 0, 3)
	for _, child := range roots[0].Children {
		names = append(names, child.Category.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestBuild_LevelsIndependentOfInputOrder(t *testing.T) {
	// Grandchild listed before its parent; levels must still propagate.
	roots := Build([]model.Category{
		cat(3, "Grandchild", id(2), 0),
		cat(2, "Child", id(1), 0),
		cat(1, "Root", nil, 0),
	})
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	child := roots[0].Children[0]
	require.Len(t, child.Children, 1)
	grandchild := child.Children[0]

	assert.Equal(t, 1, child.Level)
	assert.Equal(t, 2, grandchild.Level)
	assert.Equal(t, []int64{1, 2, 3}, grandchild.Path)
}

func TestBuild_CycleNodesUnreachableButNoHang(t *testing.T) {
	roots := Build([]model.Category{
		cat(1, "A", id(2), 0),
		cat(2, "B", id(1), 0),
		cat(3, "Root", nil, 0),
	})
	// The cycle pair attaches to each other and falls out of the forest.
	require.Len(t, roots, 1)
	assert.Equal(t, "Root", roots[0].Category.Name)
}

func TestFlatten_PreOrder(t *testing.T) {
	flat := Flatten(Build(sampleCategories()))
	names := make([]string, len(flat))
	for i, n := range flat {
		names[i] = n.Category.Name
	}
	assert.Equal(t, []string{"Drinks", "Soda", "Snacks"}, names)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}

func TestPathTo_Breadcrumb(t *testing.T) {
	forest := Build(sampleCategories())

	chain := PathTo(forest, 2)
	require.Len(t, chain, 2)
	assert.Equal(t, "Drinks", chain[0].Category.Name)
	assert.Equal(t, "Soda", chain[1].Category.Name)

	chain = PathTo(forest, 3)
	require.Len(t, chain, 1)
	assert.Equal(t, "Snacks", chain[0].Category.Name)
}

func TestPathTo_AbsentID(t *testing.T) {
	forest := Build(sampleCategories())
	assert.Empty(t, PathTo(forest, 42))
}

func TestFilter_MatchKeepsAncestors(t *testing.T) {
	forest := Build(sampleCategories())

	filtered := Filter(forest, "soda")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Drinks", filtered[0].Category.Name)
	require.Len(t, filtered[0].Children, 1)
	assert.Equal(t, "Soda", filtered[0].Children[0].Category.Name)
}

func TestFilter_MatchingParentLosesNonMatchingChildren(t *testing.T) {
	forest := Build([]model.Category{
		cat(1, "Drinks", nil, 0),
		cat(2, "Soda", id(1), 0),
		cat(3, "Juice", id(1), 1),
	})

	filtered := Filter(forest, "drinks")
	require.Len(t, filtered, 1)
	// Parent matched on its own name; non-matching children are pruned.
	assert.Empty(t, filtered[0].Children)
}

func TestFilter_CaseInsensitiveAndDescription(t *testing.T) {
	forest := Build([]model.Category{
		catDesc(1, "Beverages", "Fizzy DRINKS and more", nil, 0),
		cat(2, "Snacks", nil, 1),
	})

	filtered := Filter(forest, "fizzy")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Beverages", filtered[0].Category.Name)
}

func TestFilter_BlankQueryPassesThrough(t *testing.T) {
	forest := Build(sampleCategories())
	assert.Equal(t, forest, Filter(forest, ""))
	assert.Equal(t, forest, Filter(forest, "   "))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	forest := Build(sampleCategories())
	_ = Filter(forest, "soda")

	// Snacks was pruned from the result but must survive in the input.
	require.Len(t, forest, 2)
	require.Len(t, forest[0].Children, 1)
}

func TestOptions_IndentedLabels(t *testing.T) {
	opts := Options(sampleCategories())
	require.Len(t, opts, 3)

	assert.Equal(t, Option{Value: 1, Label: "Drinks"}, opts[0])
	assert.Equal(t, Option{Value: 2, Label: "  Soda"}, opts[1])
	assert.Equal(t, Option{Value: 3, Label: "Snacks"}, opts[2])
}

func TestOptions_DeepIndent(t *testing.T) {
	opts := Options([]model.Category{
		cat(1, "Root", nil, 0),
		cat(2, "Child", id(1), 0),
		cat(3, "Grandchild", id(2), 0),
	})
	require.Len(t, opts, 3)
	assert.Equal(t, "    Grandchild", opts[2].Label)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		categories []model.Category
		wantErr    error
	}{
		{
			name:       "valid forest",
			categories: sampleCategories(),
		},
		{
			name: "dangling parent tolerated",
			categories: []model.Category{
				cat(1, "Orphan", id(99), 0),
			},
		},
		{
			name: "duplicate id",
			categories: []model.Category{
				cat(1, "A", nil, 0),
				cat(1, "B", nil, 1),
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "self parent",
			categories: []model.Category{
				cat(1, "A", id(1), 0),
			},
			wantErr: ErrParentCycle,
		},
		{
			name: "two node cycle",
			categories: []model.Category{
				cat(1, "A", id(2), 0),
				cat(2, "B", id(1), 0),
			},
			wantErr: ErrParentCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.categories)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
