// Package layout holds the per-player workspace of the layout tool.
//
// A Workspace owns one selection, the board built on it and a memorization
// session. Every user action is a Command passed to Workspace.Dispatch, which
// applies it and recomputes a View from scratch. A Manager keeps workspaces
// by ID and serializes the commands sent to each one.
package layout
