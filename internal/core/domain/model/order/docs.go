// Package order provides the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root (identity, owner, items, derived total, status, payment)
//   - Item: an order line value object
//   - Status, PaymentMethod, PaymentStatus: enumerations with parsing and validation
//   - DomainEvent implementations recorded by Order mutations
//
// Key business rules:
//   - An order has at least one item and its total is always derived from them
//   - Status flows PENDING -> PROCESSING -> SHIPPED -> DELIVERED, with CANCELLED
//     reachable from every non-terminal status
//   - DELIVERED and CANCELLED are terminal
//   - Cancelling refunds the payment
package order
