// Package domain contains the core business types for Studyhall.
// These types have no dependencies on infrastructure and are shared
// across ports, services, and adapters.
package domain
