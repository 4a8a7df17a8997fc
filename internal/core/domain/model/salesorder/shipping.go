package salesorder

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Shipping is the tracking information attached when an order ships.
type Shipping struct {
	trackingNumber string
	carrier        string
}

func NewShipping(trackingNumber, carrier string) (Shipping, error) {
	s := Shipping{trackingNumber: strings.TrimSpace(trackingNumber), carrier: strings.TrimSpace(carrier)}

	var problems []error
	if s.trackingNumber == "" {
		problems = append(problems, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if s.carrier == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shippingCarrier"))
	}
	if err := errors.Join(problems...); err != nil {
		return Shipping{}, err
	}
	return s, nil
}

func (s Shipping) TrackingNumber() string { return s.trackingNumber }
func (s Shipping) Carrier() string        { return s.carrier }
