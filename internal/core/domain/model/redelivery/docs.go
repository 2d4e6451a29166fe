// Package redelivery models redelivery advices: permissions for customers to
// return containers to a depot, grouped into details by contract and equipment.
package redelivery
