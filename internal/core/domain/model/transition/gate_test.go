package transition_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestRoleGate(t *testing.T) {
	tests := []struct {
		via     transition.Name
		allowed []kernel.Role
	}{
		{transition.CreateRFQ, []kernel.Role{kernel.Customer}},
		{transition.AssignToSuppliers, []kernel.Role{kernel.Admin}},
		{transition.SubmitSupplierQuote, []kernel.Role{kernel.Supplier}},
		{transition.AcceptQuote, []kernel.Role{kernel.Customer}},
		{transition.DeclineQuote, []kernel.Role{kernel.Customer}},
		{transition.ArchivePurchaseOrder, []kernel.Role{kernel.Admin}},
		{transition.ShipPurchaseOrder, []kernel.Role{kernel.Supplier, kernel.Admin}},
		{transition.Reorder, []kernel.Role{kernel.Customer}},
	}

	for _, tt := range tests {
		t.Run(tt.via.String(), func(t *testing.T) {
			for _, role := range kernel.Roles() {
				assert.Equal(t, contains(tt.allowed, role), transition.Permits(tt.via, role), "role %s", role)
			}
			assert.ElementsMatch(t, tt.allowed, transition.RolesFor(tt.via))
		})
	}
}

func TestRoleGate_Unknown(t *testing.T) {
	assert.False(t, transition.Known("teleport"))
	for _, role := range kernel.Roles() {
		assert.False(t, transition.Permits("teleport", role))
	}
}

func TestRoleGate_EveryTransitionHasARole(t *testing.T) {
	for _, n := range transition.Names() {
		assert.NotEmpty(t, transition.RolesFor(n), n)
	}
}

func TestArchiveReopenNames(t *testing.T) {
	for _, e := range transition.EntityTypes() {
		a, okA := transition.ArchiveFor(e)
		r, okR := transition.ReopenFor(e)
		assert.Equal(t, e.Archivable(), okA, e.String())
		assert.Equal(t, e.Archivable(), okR, e.String())
		if e.Archivable() {
			assert.True(t, transition.Known(a))
			assert.True(t, transition.Known(r))
		}
	}
}

func TestEntityTypeFromString(t *testing.T) {
	for _, e := range transition.EntityTypes() {
		parsed, err := transition.EntityTypeFromString(e.String())
		assert.NoError(t, err)
		assert.Equal(t, e, parsed)
	}
	_, err := transition.EntityTypeFromString("invoice")
	assert.Error(t, err)
}

func contains(roles []kernel.Role, r kernel.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, transition.Authorize(transition.RFQ, transition.CreateRFQ, kernel.Customer))
	assert.ErrorIs(t, transition.Authorize(transition.RFQ, transition.CreateRFQ, kernel.Supplier), errs.ErrRoleNotPermitted)
	assert.ErrorIs(t, transition.Authorize(transition.RFQ, "teleport", kernel.Admin), errs.ErrUnknownTransition)
}
