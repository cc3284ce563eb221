package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain()
}

// FindByKind lists products of one kind, paginated
func (r *GormProductRepository) FindByKind(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.kindQuery(ctx, tenantID, kind, filter).
		Scopes(pageScope(filter, ProductSortFields, "created_at")).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// CountByKind counts products of one kind matching the filter
func (r *GormProductRepository) CountByKind(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.kindQuery(ctx, tenantID, kind, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var m models.ProductModel
	if err := m.FromDomain(product); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

// DeleteForTenant deletes a product within a tenant
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ProductModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) kindQuery(ctx context.Context, tenantID uuid.UUID, kind catalog.ProductKind, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(searchScope(filter.Search, "name", "section")).
		Where("kind = ?", kind)

	for key, value := range filter.Filters {
		switch key {
		case "section":
			q = q.Where("section = ?", value)
		case "in_stock":
			if value == true {
				q = q.Where("stock > 0")
			} else {
				q = q.Where("stock = 0")
			}
		}
	}
	return q
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
