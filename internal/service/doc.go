// Package service contains the application-specific use cases of the layout
// tool. It orchestrates domain objects and persistence contracts (defined in
// internal/store) to fulfill features that cross a process boundary.
//
// Key components:
//
// 1. Service Interfaces:
//   - DeckService saves and lists layouts, records test scores and builds
//     placement statistics from saved decks.
//
// 2. Use Case Implementations:
//   - Writes run inside store.RunInTransaction so a failed insert leaves no
//     partial rows behind.
//   - When no database is configured an unavailable implementation answers
//     every call with ErrPersistenceUnavailable, and the rest of the
//     application keeps working.
//
// 3. Error Handling:
//   - Domain validation errors pass through unchanged.
//   - Gateway failures are wrapped in ServiceError and match
//     ErrPersistenceOperationFailed as well as the underlying store error.
//
// The per-player layout workspace lives in the layout subpackage.
package service
