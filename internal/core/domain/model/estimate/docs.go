// Package estimate models damage repair estimates.
//
// An estimate is identified by its number and depot and kept as append-only
// revisions. Revise and Approve add revision n+1; nothing is edited in place.
// Totals are derived from line items with exact decimal arithmetic:
//
//	line cost = (hours * laborRate + materialCost + sum(part.quantity * part.price)) * quantity
//
// Owner, customer and insurance totals sum lines charged to O, U and I; the
// grand total sums every line. The order in which the condition code may move
// is decided by a ConditionPolicy.
package estimate
