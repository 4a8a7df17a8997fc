package pgutil

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyDTO is embedded with a column prefix wherever an amount is stored.
type MoneyDTO struct {
	Amount   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency string          `gorm:"type:char(3);not null"`
}

func FromMoney(m kernel.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount(), Currency: m.Currency()}
}

func (m MoneyDTO) ToMoney() (kernel.Money, error) {
	return kernel.NewMoney(m.Amount, m.Currency)
}

// OptionalUUID converts a nullable column.
func OptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.FromRaw(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// UTC normalizes a nullable timestamp read back from the driver.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
