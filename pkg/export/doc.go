// Package export renders search results to text, CSV, and JSON for
// files, pipes, and APIs. Exporters never mutate the result they are
// given.
package export
