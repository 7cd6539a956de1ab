package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storenest/storenest-backend/pkg/db/models"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
)

// AddressRepository reads the customer address book and freezes
// snapshots for orders.
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	DefaultShippingAddress(ctx context.Context, customerID uuid.UUID) (*models.ShippingAddress, error)
	SaveAddress(ctx context.Context, addr *models.ShippingAddress) (*models.ShippingAddress, error)
	SaveSnapshot(ctx context.Context, detail *models.ShippingDetail) (*models.ShippingDetail, error)
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository builds an address repository bound to the provided DB.
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &addressRepository{db: tx}
}

func (r *addressRepository) DefaultShippingAddress(ctx context.Context, customerID uuid.UUID) (*models.ShippingAddress, error) {
	var addr models.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND is_default = ?", customerID, true).
		Order("updated_at DESC").
		First(&addr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "please add a shipping address")
		}
		return nil, err
	}
	return &addr, nil
}

func (r *addressRepository) SaveAddress(ctx context.Context, addr *models.ShippingAddress) (*models.ShippingAddress, error) {
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address required")
	}
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Save(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}

func (r *addressRepository) SaveSnapshot(ctx context.Context, detail *models.ShippingDetail) (*models.ShippingDetail, error) {
	if detail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping detail required")
	}
	if detail.ID == uuid.Nil {
		detail.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(detail).Error; err != nil {
		return nil, err
	}
	return detail, nil
}
