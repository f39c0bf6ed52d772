package subnetter

import (
	"errors"
	"fmt"
	"io"

	"k8s.io/klog/v2"

	"github.com/kubeovn/subnetter/pkg/ipam"
	"github.com/kubeovn/subnetter/pkg/metrics"
	"github.com/kubeovn/subnetter/pkg/report"
)

// ErrUnsatisfied is returned by Run when the VLSM report was rendered
// but at least one host requirement could not be allocated.
var ErrUnsatisfied = errors.New("UnsatisfiedRequirements")

// Run calculates the network of config and writes the report to w.
// Without host requirements it describes the network itself, otherwise it
// allocates one subnet per requirement.
func Run(config *Configuration, w io.Writer) error {
	network, err := ipam.ParseCIDR(config.Network)
	if err != nil {
		klog.Error(err)
		return err
	}
	renderer, err := rendererFor(config.Output)
	if err != nil {
		return err
	}

	if !config.VLSM() {
		return renderer.RenderSubnet(w, report.NewSubnetInfo(network))
	}

	var opts []ipam.Option
	if config.LooseBounds {
		opts = append(opts, ipam.WithLooseBounds())
	}
	alloc := ipam.Allocate(network, config.HostCounts, opts...)
	if err = alloc.Validate(); err != nil {
		klog.Errorf("inconsistent allocation in %s: %v", network, err)
		return err
	}
	klog.V(3).Infof("allocated %d subnets in %s, %d requirements failed", len(alloc.Subnets), network, len(alloc.Failures))

	if config.MetricsFile != "" {
		metrics.InitSubnetterMetrics()
		metrics.ObserveAllocation(alloc)
	}
	if err = renderer.RenderVLSM(w, report.NewVLSMReport(alloc)); err != nil {
		return err
	}
	if config.MetricsFile != "" {
		if err = metrics.WriteTextfile(config.MetricsFile); err != nil {
			return err
		}
	}

	if err = alloc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsatisfied, err)
	}
	return nil
}

func rendererFor(output string) (report.Renderer, error) {
	if r, ok := report.Lookup(output); ok {
		return r, nil
	}
	if output == report.OutputTable {
		klog.Warning("table output is not available in this build, falling back to text")
		if r, ok := report.Lookup(report.OutputText); ok {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no renderer for output %q, available: %v", output, report.Names())
}
