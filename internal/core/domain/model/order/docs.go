// Package order contains the Order aggregate: a catering booking for one menu
// at a future date, its pricing, and the finite state machine governing its
// fulfillment lifecycle from acceptance through delivery and equipment return.
package order
