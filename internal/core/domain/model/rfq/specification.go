package rfq

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

// MaxQuantity bounds a single request.
const MaxQuantity = 1_000_000

// Specification is the immutable part of an RFQ. Reorders copy it verbatim.
type Specification struct {
	material             string
	grade                string
	finishing            string
	tolerance            string
	quantity             int
	manufacturingProcess string
}

// NewSpecification requires material, quantity and manufacturing process.
// Grade, finishing and tolerance are optional.
func NewSpecification(
	material, grade, finishing, tolerance string,
	quantity int,
	manufacturingProcess string,
) (Specification, error) {
	spec := Specification{
		material:             strings.TrimSpace(material),
		grade:                strings.TrimSpace(grade),
		finishing:            strings.TrimSpace(finishing),
		tolerance:            strings.TrimSpace(tolerance),
		quantity:             quantity,
		manufacturingProcess: strings.TrimSpace(manufacturingProcess),
	}

	var problems []error
	if spec.material == "" {
		problems = append(problems, errs.NewValueIsRequiredError("material"))
	}
	if spec.manufacturingProcess == "" {
		problems = append(problems, errs.NewValueIsRequiredError("manufacturingProcess"))
	}
	if quantity <= 0 || quantity > MaxQuantity {
		problems = append(problems, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity))
	}
	if err := errors.Join(problems...); err != nil {
		return Specification{}, err
	}
	return spec, nil
}

func (s Specification) Material() string             { return s.material }
func (s Specification) Grade() string                { return s.grade }
func (s Specification) Finishing() string            { return s.finishing }
func (s Specification) Tolerance() string            { return s.tolerance }
func (s Specification) Quantity() int                { return s.quantity }
func (s Specification) ManufacturingProcess() string { return s.manufacturingProcess }

func (s Specification) IsZero() bool {
	return s == Specification{}
}
