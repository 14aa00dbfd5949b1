package prompush

import (
	"log"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/metrics"
)

// DefaultGatewayURL is used when the pushgateway backend is selected without
// a URL.
const DefaultGatewayURL = "http://localhost:9091"

// Install selects the metrics backend by name and installs it globally.
// "pushgateway" installs a Backend; "" and "none" keep the nop backend; any
// other name is logged and ignored. The returned flush pushes collected
// metrics and logs (rather than returns) push errors; it is never nil.
func Install(backendName, gatewayURL, jobName string) (flush func()) {
	flush = func() {}

	switch backendName {
	case "pushgateway":
		if gatewayURL == "" {
			gatewayURL = DefaultGatewayURL
		}
		b, err := NewBackend(jobName, gatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return flush
		}
		log.Printf("metrics: url=%v, backend=%v, job_name=%v", gatewayURL, backendName, b.jobName)
		metrics.SetBackend(b)
		return func() {
			if err := metrics.Flush(); err != nil {
				log.Printf("metrics: flush error: %v", err)
			}
		}

	case "", "none":
		// metrics disabled; nop backend remains

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
	return flush
}
