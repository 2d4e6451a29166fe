// Package gate models gate records: the physical movements of units in and out
// of a depot, each tied to the advice that authorised it.
//
// A unit has no stored gate state. Current derives it from the unit's records.
package gate
