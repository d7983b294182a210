// Package domain contains the core entities of the back office (users,
// profiles, products, companies) and shared value types. These types are
// intentionally free of infrastructure concerns so they can be shared across
// packages.
package domain
