// Package party models the counterparts named on depot advices: depots,
// customers, owners, recipients, billing and insurance parties.
//
// A Party is a tagged variant. Internal parties are addressed by their 9
// character EDI company id; external parties may instead be addressed by an
// internal code, and must carry at least one of the two. Parties are looked up
// and deduplicated by Key.
package party
