package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.False(t, id.IsZero())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "canonical", input: canonical},
		{name: "braces", input: "{" + canonical + "}"},
		{name: "urn prefix", input: "urn:uuid:" + canonical},
		{name: "no hyphens", input: "550e8400e29b41d4a716446655440000"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "rfq-42", wantErr: true},
		{name: "too short", input: "550e8400-e29b-41d4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid UUID format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		assert.Error(t, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.True(t, zero.IsZero())
	assert.Equal(t, uuid.Nil, zero.Bytes())
}

func TestTypedIDs(t *testing.T) {
	t.Run("typed ids compare by value", func(t *testing.T) {
		raw := kernel.NewUUID()

		assert.Equal(t, kernel.SalesQuoteID{UUID: raw}, kernel.SalesQuoteID{UUID: raw})
		assert.NotEqual(t, kernel.NewSalesQuoteID(), kernel.NewSalesQuoteID())
	})

	t.Run("typed ids can key maps", func(t *testing.T) {
		id := kernel.NewSalesOrderID()
		seen := map[kernel.SalesOrderID]int{id: 1}

		assert.Equal(t, 1, seen[kernel.SalesOrderID{UUID: id.UUID}])
	})

	t.Run("OptionalRaw", func(t *testing.T) {
		assert.Nil(t, kernel.OptionalRaw[kernel.SalesOrderID](nil))

		id := kernel.NewSalesOrderID()
		raw := kernel.OptionalRaw(&id)
		require.NotNil(t, raw)
		assert.Equal(t, id.Bytes(), *raw)
	})

	t.Run("FromRaw rejects nil", func(t *testing.T) {
		_, err := kernel.FromRaw(uuid.Nil)
		assert.Error(t, err)
	})
}
