package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

// WriteTextfile dumps the registry in the text format read by the
// node exporter textfile collector. The file is replaced atomically.
func WriteTextfile(path string) error {
	fetchKlogMetrics()
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		klog.Error(err)
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	klog.V(3).Infof("metrics written to %s", path)
	return nil
}
