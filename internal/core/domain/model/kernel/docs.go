// Package kernel holds the value objects shared by the order model:
//   - UUID: order identifiers, never the nil UUID
//   - Money: non-negative exact decimal amounts
//   - Address: a validated shipping destination
//
// Values are immutable and safe to copy.
package kernel
