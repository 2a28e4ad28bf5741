// Package kernel contains shared value objects used across domain aggregates.
// These types enforce their own invariants and are immutable after construction.
package kernel
