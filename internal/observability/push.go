package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushMetrics delivers the default registry's metrics to a Pushgateway,
// grouped by run ID so successive builds don't overwrite each other. A
// one-shot build has no scrape surface, so delivery happens once at exit.
func PushMetrics(url, job, runID string) error {
	err := push.New(url, job).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("run_id", runID).
		Push()
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
