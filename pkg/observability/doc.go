// Package observability translates machine hook events and ReadSymbol
// outcomes into Prometheus metrics.
package observability
