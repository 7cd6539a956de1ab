package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRule is a named percentage applied to matching variants.
type TaxRule struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Percent   decimal.Decimal `gorm:"column:percent;type:numeric(6,3);not null"`
	Active    bool            `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductTax links a variant to a tax rule.
type ProductTax struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VariantID uuid.UUID `gorm:"column:variant_id;type:uuid;not null;index"`
	TaxRuleID uuid.UUID `gorm:"column:tax_rule_id;type:uuid;not null"`
	TaxRule   *TaxRule  `gorm:"foreignKey:TaxRuleID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
