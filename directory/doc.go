// Package directory retrieves the municipal facility directory and filters
// it down to locations that advertise lane swim.
package directory
