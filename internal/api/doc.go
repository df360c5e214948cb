// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the layout workspaces and deck service, translating HTTP concerns to
// commands and use cases.
package api
