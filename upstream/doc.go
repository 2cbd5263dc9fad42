// Package upstream provides the shared HTTP fetch policy for the open-data
// service: bounded retries with exponential backoff and typed transport
// errors. A 404 is reported through the status code, never retried and
// never treated as a transport failure.
package upstream
