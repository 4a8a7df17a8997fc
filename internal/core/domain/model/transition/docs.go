// Package transition is the table-driven validator for every lifecycle in the
// marketplace.
//
// Each entity package (rfq, supplierquote, salesquote, purchaseorder,
// salesorder) declares a Table of (state, transition) -> next state edges.
// The Role Gate in gate.go maps every transition to the roles that may invoke
// it. Table.Validate combines the two:
//
//	next, err := table.Validate(current, transition.AcceptQuote, kernel.Customer)
//
// A denial is always an *errs.TransitionDeniedError whose Unwrap returns one of
// errs.ErrUnknownTransition, errs.ErrRoleNotPermitted, errs.ErrIllegalFromState
// or errs.ErrPreconditionFailed. Validation never touches storage.
package transition
