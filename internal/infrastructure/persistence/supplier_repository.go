package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByIDForTenant finds a supplier by ID within a tenant
func (r *GormSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	var m models.SupplierModel
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

// FindAllForTenant lists a tenant's suppliers, paginated
func (r *GormSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	if err := r.filtered(ctx, tenantID, filter).
		Scopes(pageScope(filter, SupplierSortFields, "name")).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return suppliersFromRows(rows)
}

// FindByCategory returns every supplier whose category equals category,
// ignoring letter case
func (r *GormSupplierRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category string) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(category) = ?", tenantID, strings.ToLower(strings.TrimSpace(category))).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return suppliersFromRows(rows)
}

// CountForTenant counts a tenant's suppliers matching the filter
func (r *GormSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID reports whether the supplier exists within the tenant
func (r *GormSupplierRepository) ExistsByID(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	var m models.SupplierModel
	if err := m.FromDomain(supplier); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

// DeleteForTenant deletes a supplier within a tenant
func (r *GormSupplierRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.SupplierModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSupplierRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.SupplierModel{}).
		Where("tenant_id = ?", tenantID).
		Scopes(searchScope(filter.Search, "name", "email", "phone_number"))

	if v, ok := filter.Filters["category"]; ok {
		q = q.Where("LOWER(category) = LOWER(?)", v)
	}
	return q
}

func suppliersFromRows(rows []models.SupplierModel) ([]partner.Supplier, error) {
	suppliers := make([]partner.Supplier, 0, len(rows))
	for i := range rows {
		s, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, nil
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
