// Package services contains stateless domain services that operate across
// aggregates, currently the pricing calculation used at order creation.
package services
