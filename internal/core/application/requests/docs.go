// Package requests declares the candidate records accepted by the depot
// workflow, as decoded from a transport. Field constraints are declared with
// validate tags and checked by the validation package before any command is
// built from them.
package requests
