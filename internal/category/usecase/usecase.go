package usecase

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/category"
	"github.com/nivapos/catalog-service/internal/category/dto"
	"github.com/nivapos/catalog-service/internal/hierarchy"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/cache"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

const flatListTTL = 5 * time.Minute

type categoryUseCase struct {
	repo category.Repository
	// Two cache layers: Redis holds the merchant's flat list across
	// instances, the LRU holds built forests in-process. Both are
	// dropped on any write for the merchant.
	cache  *cache.RedisClient
	forest *lru.Cache[string, []*hierarchy.Node]
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, redis *cache.RedisClient, log logger.ZapLogger) category.UseCase {
	forest, _ := lru.New[string, []*hierarchy.Node](128)
	return &categoryUseCase{
		repo:   repo,
		cache:  redis,
		forest: forest,
		logger: log,
	}
}

func flatListKey(merchantID string) string {
	return fmt.Sprintf("categories:flat:%s", merchantID)
}

func (uc *categoryUseCase) loadCategories(ctx context.Context, merchantID string) ([]model.Category, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, flatListKey(merchantID)).Result()
		if err == nil {
			var cats []model.Category
			if err := json.Unmarshal([]byte(val), &cats); err == nil {
				return cats, nil
			}
		}
	}

	cats, err := uc.repo.FindAllByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(cats); err == nil {
			uc.cache.Client.Set(ctx, flatListKey(merchantID), data, flatListTTL)
		}
	}
	return cats, nil
}

func (uc *categoryUseCase) loadForest(ctx context.Context, merchantID string) ([]*hierarchy.Node, error) {
	if roots, ok := uc.forest.Get(merchantID); ok {
		return roots, nil
	}

	cats, err := uc.loadCategories(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	roots := hierarchy.Build(cats)
	uc.forest.Add(merchantID, roots)
	return roots, nil
}

func (uc *categoryUseCase) invalidate(ctx context.Context, merchantID string) {
	uc.forest.Remove(merchantID)
	if uc.cache != nil {
		if err := uc.cache.Client.Del(ctx, flatListKey(merchantID)).Err(); err != nil {
			uc.logger.Warn("failed to invalidate category cache",
				zap.String("merchant_id", merchantID), zap.Error(err))
		}
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.ParentID != nil {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.MerchantID != input.MerchantID {
			return nil, category.ErrParentNotFound
		}
	}

	now := time.Now()
	cat := &model.Category{
		MerchantID:  input.MerchantID,
		ParentID:    input.ParentID,
		Name:        input.Name,
		Description: &input.Description,
		ImageURL:    &input.ImageURL,
		SortOrder:   input.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, input.MerchantID)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.MerchantID != input.MerchantID {
		return nil, category.ErrNotFound
	}

	if input.ParentID != nil {
		if err := uc.checkParent(ctx, input); err != nil {
			return nil, err
		}
	}

	cat.ParentID = input.ParentID
	cat.Name = input.Name
	cat.Description = &input.Description
	cat.ImageURL = &input.ImageURL
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, input.MerchantID)
	return cat, nil
}

// checkParent rejects parent assignments that would fabricate a cycle: the
// node itself, or anything in its own subtree. The read-side builder tolerates
// cycles silently, so this is the only place they can be stopped.
func (uc *categoryUseCase) checkParent(ctx context.Context, input *dto.UpdateCategoryInput) error {
	if *input.ParentID == input.ID {
		return category.ErrInvalidParent
	}

	parent, err := uc.repo.FindByID(ctx, *input.ParentID)
	if err != nil {
		return err
	}
	if parent == nil || parent.MerchantID != input.MerchantID {
		return category.ErrParentNotFound
	}

	cats, err := uc.loadCategories(ctx, input.MerchantID)
	if err != nil {
		return err
	}
	roots := hierarchy.Build(cats)
	if node := hierarchy.Find(roots, input.ID); node != nil {
		if hierarchy.Find(node.Children, *input.ParentID) != nil {
			return category.ErrInvalidParent
		}
	}
	return nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, merchantID string, id int64) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return nil // Already deleted
	}
	if cat.MerchantID != merchantID {
		return category.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, merchantID)
	return nil
}

func (uc *categoryUseCase) GetTree(ctx context.Context, merchantID, query string) ([]*hierarchy.Node, error) {
	roots, err := uc.loadForest(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return hierarchy.Filter(roots, query), nil
}

func (uc *categoryUseCase) GetBreadcrumb(ctx context.Context, merchantID string, id int64) ([]*hierarchy.Node, error) {
	roots, err := uc.loadForest(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return hierarchy.PathTo(roots, id), nil
}

func (uc *categoryUseCase) ListOptions(ctx context.Context, merchantID string) ([]hierarchy.Option, error) {
	cats, err := uc.loadCategories(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return hierarchy.Options(cats), nil
}
