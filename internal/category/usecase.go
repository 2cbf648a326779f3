package category

import (
	"context"

	"github.com/nivapos/catalog-service/internal/category/dto"
	"github.com/nivapos/catalog-service/internal/hierarchy"
	"github.com/nivapos/catalog-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, merchantID string, id int64) error

	// Hierarchy views consumed by the frontend tree, breadcrumb and
	// selector widgets.
	GetTree(ctx context.Context, merchantID, query string) ([]*hierarchy.Node, error)
	GetBreadcrumb(ctx context.Context, merchantID string, id int64) ([]*hierarchy.Node, error)
	ListOptions(ctx context.Context, merchantID string) ([]hierarchy.Option, error)
}
