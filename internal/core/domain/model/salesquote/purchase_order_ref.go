package salesquote

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

// PurchaseOrderRef is the customer's purchase order artifact: the file
// reference returned by the file store and the customer's PO number.
type PurchaseOrderRef struct {
	url    string
	number string
}

func NewPurchaseOrderRef(url, number string) (PurchaseOrderRef, error) {
	ref := PurchaseOrderRef{url: strings.TrimSpace(url), number: strings.TrimSpace(number)}

	var problems []error
	if ref.url == "" {
		problems = append(problems, errs.NewValueIsRequiredError("fileRef"))
	}
	if ref.number == "" {
		problems = append(problems, errs.NewValueIsRequiredError("poNumber"))
	}
	if err := errors.Join(problems...); err != nil {
		return PurchaseOrderRef{}, err
	}
	return ref, nil
}

func (r PurchaseOrderRef) URL() string    { return r.url }
func (r PurchaseOrderRef) Number() string { return r.number }
