// Package workorder models repair work orders issued from approved estimates.
package workorder
