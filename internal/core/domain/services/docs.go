// Package services provides domain services for rules that span more than one
// aggregate of the depot life cycle.
//
// The package includes:
//   - AdviceMatcher: applies gate movements to the redelivery or release that authorised them
package services
