// Package release models release advices: permissions to take containers out
// of a depot for a sale, a booking or a repositioning. Each detail may restrict
// eligible units through key/value criteria.
package release
