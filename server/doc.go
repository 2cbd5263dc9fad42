// Package server exposes the query API over HTTP: the pools time-window
// query, the generated OpenAPI document, and a health endpoint. It is a
// thin read-only layer over the snapshot store.
package server
