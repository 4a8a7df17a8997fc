package rfq_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Strings(t *testing.T) {
	for _, s := range rfq.Lifecycle.States() {
		t.Run(s.String(), func(t *testing.T) {
			parsed, err := rfq.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
			assert.NoError(t, s.Validate())
		})
	}

	assert.Equal(t, "sent_to_suppliers", rfq.SentToSuppliers.String())
	assert.Error(t, rfq.Unknown.Validate())
	_, err := rfq.StatusFromString("cancelled")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLifecycle_Edges(t *testing.T) {
	tests := []struct {
		from rfq.Status
		via  transition.Name
		role kernel.Role
		want rfq.Status
	}{
		{rfq.Submitted, transition.ReviewRFQ, kernel.Admin, rfq.Reviewing},
		{rfq.Submitted, transition.AssignToSuppliers, kernel.Admin, rfq.SentToSuppliers},
		{rfq.Reviewing, transition.AssignToSuppliers, kernel.Admin, rfq.SentToSuppliers},
		{rfq.SentToSuppliers, transition.AssignToSuppliers, kernel.Admin, rfq.SentToSuppliers},
		{rfq.SentToSuppliers, transition.PublishQuote, kernel.Admin, rfq.Quoted},
		{rfq.Quoted, transition.AcceptQuote, kernel.Customer, rfq.Accepted},
		{rfq.Quoted, transition.DeclineQuote, kernel.Customer, rfq.Declined},
		{rfq.Quoted, transition.CancelRFQ, kernel.Admin, rfq.Declined},
		{rfq.Accepted, transition.OverrideQuoteStatus, kernel.Admin, rfq.Declined},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.from, tt.via), func(t *testing.T) {
			next, err := rfq.Lifecycle.Validate(tt.from, tt.via, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

// Every (state, transition, role) triple is allowed exactly when the table
// has an edge and the Role Gate permits the role.
func TestLifecycle_Exhaustive(t *testing.T) {
	for _, from := range rfq.Lifecycle.States() {
		for _, via := range transition.Names() {
			for _, role := range kernel.Roles() {
				_, hasEdge := rfq.Lifecycle.Next(from, via)
				_, err := rfq.Lifecycle.Validate(from, via, role)
				want := hasEdge && transition.Permits(via, role)
				assert.Equal(t, want, err == nil, "%s --%s--> by %s: %v", from, via, role, err)
			}
		}
	}
}

func TestLifecycle_NoForwardSkips(t *testing.T) {
	_, err := rfq.Lifecycle.Validate(rfq.Submitted, transition.PublishQuote, kernel.Admin)
	assert.ErrorIs(t, err, errs.ErrIllegalFromState)

	_, err = rfq.Lifecycle.Validate(rfq.Accepted, transition.CancelRFQ, kernel.Admin)
	assert.ErrorIs(t, err, errs.ErrIllegalFromState)

	_, err = rfq.Lifecycle.Validate(rfq.Quoted, transition.AcceptQuote, kernel.Supplier)
	assert.ErrorIs(t, err, errs.ErrRoleNotPermitted)
}
