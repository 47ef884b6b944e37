// Package common holds constants, sentinel errors and small helpers shared by
// the client and the development server.
package common

const (
	// RequestIDHeaderName carries a per-call id so client and server logs can
	// be joined.
	RequestIDHeaderName = "X-Request-ID"

	// APIBasePath is the path prefix every collaborator endpoint lives under.
	APIBasePath = "/api"
)
