// Package services provides domain services whose rules span more than one
// aggregate of the order lifecycle. They are pure: they mutate the aggregates
// handed to them and never touch storage.
//
// The package includes:
//   - LifecycleValidator: the type-erased Transition Validator over every entity type
//   - QuotePublisher: turns a selected supplier quote into a priced sales quote
//   - SalesOrderConverter and PurchaseOrderIssuer: the only creation points of orders
//   - ReorderGenerator: derives a fresh RFQ from a finished sales order
package services
