package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storenest/storenest-backend/pkg/enums"
)

// DiscountRule is either a percentage off the line subtotal or a flat
// amount off each unit.
type DiscountRule struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name      string             `gorm:"column:name;not null"`
	Type      enums.DiscountType `gorm:"column:type;type:text;not null"`
	Value     decimal.Decimal    `gorm:"column:value;type:numeric(12,2);not null"`
	StartsAt  *time.Time         `gorm:"column:starts_at"`
	EndsAt    *time.Time         `gorm:"column:ends_at"`
	Active    bool               `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// InEffect reports whether the rule applies at the given instant.
func (d DiscountRule) InEffect(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	return true
}

// ProductDiscount links a variant to a discount rule.
type ProductDiscount struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	VariantID      uuid.UUID     `gorm:"column:variant_id;type:uuid;not null;index"`
	DiscountRuleID uuid.UUID     `gorm:"column:discount_rule_id;type:uuid;not null"`
	DiscountRule   *DiscountRule `gorm:"foreignKey:DiscountRuleID"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
}
