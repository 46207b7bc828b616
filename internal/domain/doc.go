// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (user.go, post.go,
// interaction.go, relationship.go, sentiment.go) with shared types, typed
// sentinel errors, and the storage ports the services depend on. No
// implementation code - just contracts. Keeping the interfaces here prevents
// circular imports between the services and the storage adapters.
package domain
