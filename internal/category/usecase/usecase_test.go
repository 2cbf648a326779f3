package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivapos/catalog-service/internal/category"
	"github.com/nivapos/catalog-service/internal/category/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type fakeRepo struct {
	nextID     int64
	categories map[int64]*model.Category
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, categories: make(map[int64]*model.Category)}
}

func (r *fakeRepo) Create(ctx context.Context, c *model.Category) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.MerchantID == f.MerchantID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) FindAllByMerchant(ctx context.Context, merchantID string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.MerchantID == merchantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *model.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(r.categories, id)
	return nil
}

const testMerchant = "m-1"

func seedTree(t *testing.T, uc category.UseCase) (drinks, soda, snacks *model.Category) {
	t.Helper()
	ctx := context.Background()

	drinks, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		MerchantID: testMerchant, Name: "Drinks", SortOrder: 1,
	})
	require.NoError(t, err)

	soda, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		MerchantID: testMerchant, Name: "Soda", ParentID: &drinks.ID, SortOrder: 1,
	})
	require.NoError(t, err)

	snacks, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		MerchantID: testMerchant, Name: "Snacks", SortOrder: 2,
	})
	require.NoError(t, err)

	return drinks, soda, snacks
}

func TestCreateCategoryRejectsUnknownParent(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())

	missing := int64(99)
	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		MerchantID: testMerchant, Name: "Orphan", ParentID: &missing,
	})
	assert.ErrorIs(t, err, category.ErrParentNotFound)
}

func TestCreateCategoryRejectsForeignParent(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())

	other, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		MerchantID: "m-2", Name: "Theirs",
	})
	require.NoError(t, err)

	_, err = uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		MerchantID: testMerchant, Name: "Mine", ParentID: &other.ID,
	})
	assert.ErrorIs(t, err, category.ErrParentNotFound)
}

func TestGetTreeBuildsForest(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, soda, snacks := seedTree(t, uc)

	roots, err := uc.GetTree(context.Background(), testMerchant, "")
	require.NoError(t, err)
	require.Len(t, roots, 2)

	assert.Equal(t, drinks.ID, roots[0].Category.ID)
	assert.Equal(t, snacks.ID, roots[1].Category.ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, soda.ID, roots[0].Children[0].Category.ID)
}

func TestGetTreeFiltersByQuery(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, soda, _ := seedTree(t, uc)

	roots, err := uc.GetTree(context.Background(), testMerchant, "soda")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, drinks.ID, roots[0].Category.ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, soda.ID, roots[0].Children[0].Category.ID)
}

func TestGetBreadcrumb(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, soda, _ := seedTree(t, uc)

	path, err := uc.GetBreadcrumb(context.Background(), testMerchant, soda.ID)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, drinks.ID, path[0].Category.ID)
	assert.Equal(t, soda.ID, path[1].Category.ID)
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, _, _ := seedTree(t, uc)

	_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID: drinks.ID, MerchantID: testMerchant, Name: "Drinks", ParentID: &drinks.ID,
	})
	assert.ErrorIs(t, err, category.ErrInvalidParent)
}

func TestUpdateCategoryRejectsDescendantParent(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, soda, _ := seedTree(t, uc)

	// Reparenting Drinks under its own child Soda would make a cycle.
	_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID: drinks.ID, MerchantID: testMerchant, Name: "Drinks", ParentID: &soda.ID,
	})
	assert.ErrorIs(t, err, category.ErrInvalidParent)
}

func TestUpdateCategoryAllowsValidReparent(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	_, soda, snacks := seedTree(t, uc)

	updated, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID: soda.ID, MerchantID: testMerchant, Name: "Soda", ParentID: &snacks.ID, IsActive: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, snacks.ID, *updated.ParentID)

	// The cached forest must reflect the move.
	path, err := uc.GetBreadcrumb(context.Background(), testMerchant, soda.ID)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, snacks.ID, path[0].Category.ID)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())

	_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID: 42, MerchantID: testMerchant, Name: "Ghost",
	})
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, _, _ := seedTree(t, uc)

	require.NoError(t, uc.DeleteCategory(context.Background(), testMerchant, drinks.ID))

	got, err := uc.GetCategory(context.Background(), drinks.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is a no-op.
	assert.NoError(t, uc.DeleteCategory(context.Background(), testMerchant, drinks.ID))
}

func TestDeleteCategoryWrongMerchant(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	drinks, _, _ := seedTree(t, uc)

	err := uc.DeleteCategory(context.Background(), "m-2", drinks.ID)
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestListOptionsIndentsByDepth(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), nil, logger.NewNop())
	_, _, _ = seedTree(t, uc)

	opts, err := uc.ListOptions(context.Background(), testMerchant)
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, "Drinks", opts[0].Label)
	assert.Equal(t, "  Soda", opts[1].Label)
	assert.Equal(t, "Snacks", opts[2].Label)
}
