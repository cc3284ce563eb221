package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/libreria/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale by ID within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var m models.SaleModel
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

// FindAllForTenant lists a tenant's sales, paginated
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	var rows []models.SaleModel
	if err := r.filtered(ctx, tenantID, filter).
		Scopes(pageScope(filter, SaleSortFields, "date")).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return salesFromRows(rows)
}

// CountForTenant counts a tenant's sales matching the filter
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBetween returns the tenant's sales dated within [from, to], oldest
// first so rankings see products in the order they were sold.
func (r *GormSaleRepository) FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]trade.Sale, error) {
	var rows []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from.UTC(), to.UTC()).
		Order("date ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return salesFromRows(rows)
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	var m models.SaleModel
	if err := m.FromDomain(sale); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

// DeleteForTenant deletes a sale within a tenant
func (r *GormSaleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.SaleModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSaleRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(searchScope(filter.Search, "description", "category"))

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			q = q.Where("product_id = ?", value)
		case "category":
			q = q.Where("LOWER(category) = LOWER(?)", value)
		}
	}
	return q
}

func salesFromRows(rows []models.SaleModel) ([]trade.Sale, error) {
	sales := make([]trade.Sale, 0, len(rows))
	for i := range rows {
		s, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		sales = append(sales, *s)
	}
	return sales, nil
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
