// Package store keeps saved roadmaps ("Save to Dashboard") in a SQLite
// database through modernc.org/sqlite. Each record holds the wizard input and
// the roadmap generated for it.
package store
