// Package store defines the persistence interfaces for saved decks and
// memorization scores, the errors they return, and the transaction helper
// shared by their implementations.
package store
