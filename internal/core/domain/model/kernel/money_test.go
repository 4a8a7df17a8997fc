package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
		wantErr  error
	}{
		{name: "whole amount", amount: "100", currency: "USD", want: "100.00 USD"},
		{name: "rounds to cents", amount: "10.005", currency: "EUR", want: "10.01 EUR"},
		{name: "zero is allowed", amount: "0", currency: "USD", want: "0.00 USD"},
		{name: "negative", amount: "-1", currency: "USD", wantErr: errs.ErrValueIsOutOfRange},
		{name: "lower case currency", amount: "1", currency: "usd", wantErr: errs.ErrValueIsInvalid},
		{name: "empty currency", amount: "1", currency: "", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := kernel.NewMoney(decimal.RequireFromString(tt.amount), tt.currency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoney_WithMarkup(t *testing.T) {
	price := kernel.MustMoney("100.00", "USD")

	t.Run("applies markup", func(t *testing.T) {
		got, err := price.WithMarkup(decimal.RequireFromString("0.30"))

		require.NoError(t, err)
		assert.True(t, got.IsEqual(kernel.MustMoney("130", "USD")))
	})

	t.Run("zero markup keeps price", func(t *testing.T) {
		got, err := price.WithMarkup(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, got.IsEqual(price))
	})

	t.Run("negative markup is rejected", func(t *testing.T) {
		_, err := price.WithMarkup(decimal.RequireFromString("-0.1"))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value money is rejected", func(t *testing.T) {
		_, err := kernel.Money{}.WithMarkup(decimal.Zero)

		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})
}
