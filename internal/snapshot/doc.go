// Package snapshot serializes scale divisions and axis configurations to
// canonical JSON and derives content hashes from them.
//
// Canonical JSON follows RFC 8785:
//   - object keys sorted by UTF-16 code units
//   - no HTML escaping
//   - strings NFC normalized
//   - numbers in the shortest ECMAScript form (1e21, 0.000001, 1e-7)
//
// NaN and infinities cannot be represented and are rejected. The engine
// never emits them for tick values.
//
// Hashes are SHA-256 over a domain prefix, a 0x00 separator and the
// canonical bytes, so that the same JSON used for different purposes never
// collides.
package snapshot
