// Package kernel provides the shared domain primitives of the depot life cycle model.
//
// The package includes:
//   - UUID: surrogate identifier of parties and domain events
//   - CompanyID, UnitNumber, Currency: EDI business keys with fixed shapes
//   - Amount: a non-negative decimal used for money, hours and rates
//   - Caller: explicit identity of the issuer of a command
//   - DomainEvent and EventRecorder: facts recorded by aggregates for the outbox
//
// Value objects carry a guard.ConstructorGuard so a zero value never passes Validate.
package kernel
