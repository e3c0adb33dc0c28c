// Package kernel contains the shared value objects of the printflow domain
// model: entity identifiers (UUID) and the order-number value object
// (OrderNo). These types are immutable, validated at construction, and used
// by every aggregate in the domain.
package kernel
