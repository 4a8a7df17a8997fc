package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/pkg/guard"
)

var ErrListRFQsQueryIsNotConstructed = errors.New(
	"ListRFQsQuery must be created via NewListRFQsQuery constructor",
)

// ListRFQsQuery lists the RFQs visible to an actor: a customer's own RFQs,
// the RFQs a supplier is assigned to, or every RFQ for an admin. Newest first.
type ListRFQsQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewListRFQsQuery(actor kernel.Actor) (ListRFQsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListRFQsQuery{}, err
	}
	return ListRFQsQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRFQsQuery) Validate() error {
	return q.guard.Validate(ErrListRFQsQueryIsNotConstructed)
}

func (q ListRFQsQuery) Actor() kernel.Actor { return q.actor }

type RFQSummary struct {
	ID            kernel.RFQID
	OwnerID       kernel.CustomerID
	ProjectName   string
	Material      string
	Quantity      int
	Status        rfq.Status
	OriginOrderID *kernel.SalesOrderID
	CreatedAt     time.Time
}
