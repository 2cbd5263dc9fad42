// Package refresh runs the daily fetch+normalize+write cycle in the
// background, separate from request serving.
package refresh
