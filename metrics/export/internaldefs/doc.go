// Package internaldefs holds the shared metric name and bucket definitions
// used by the Prometheus and OpenTelemetry exporters so both render the same
// series for the same engine counters.
package internaldefs
