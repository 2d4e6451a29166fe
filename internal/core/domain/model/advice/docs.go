// Package advice holds what redelivery and release advices have in common:
// the header fields and the derived lifecycle status.
package advice
