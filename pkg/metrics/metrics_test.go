package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/kubeovn/subnetter/pkg/ipam"
)

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ipam.ErrInsufficientSpace, ReasonInsufficientSpace},
		{ipam.ErrInvalidRequirement, ReasonInvalidRequirement},
		{ipam.ErrAddressSpaceExhausted, ReasonAddressSpaceExhausted},
		{errors.New("boom"), ReasonOther},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FailureReason(tt.err))
	}
}

func TestObserveAllocation(t *testing.T) {
	InitSubnetterMetrics()
	// registering twice must not panic
	InitSubnetterMetrics()

	parent, err := ipam.ParseCIDR("10.0.0.0/30")
	require.NoError(t, err)

	runs := testutil.ToFloat64(allocationRunsCounter)
	subnets := testutil.ToFloat64(subnetsAllocatedCounter)
	insufficient := testutil.ToFloat64(allocationFailuresCounter.WithLabelValues(ReasonInsufficientSpace))
	invalid := testutil.ToFloat64(allocationFailuresCounter.WithLabelValues(ReasonInvalidRequirement))

	ObserveAllocation(ipam.Allocate(parent, []int{2, 5, 0}))

	require.Equal(t, runs+1, testutil.ToFloat64(allocationRunsCounter))
	require.Equal(t, subnets+1, testutil.ToFloat64(subnetsAllocatedCounter))
	require.Equal(t, insufficient+1, testutil.ToFloat64(allocationFailuresCounter.WithLabelValues(ReasonInsufficientSpace)))
	require.Equal(t, invalid+1, testutil.ToFloat64(allocationFailuresCounter.WithLabelValues(ReasonInvalidRequirement)))
	require.Equal(t, float64(4), testutil.ToFloat64(allocatedAddressesGauge.WithLabelValues("10.0.0.0/30")))
	require.Zero(t, testutil.ToFloat64(freeAddressesGauge.WithLabelValues("10.0.0.0/30")))
}

func TestWriteTextfile(t *testing.T) {
	InitSubnetterMetrics()
	parent, err := ipam.ParseCIDR("192.168.1.0/24")
	require.NoError(t, err)
	ObserveAllocation(ipam.Allocate(parent, []int{50, 20, 10}))

	path := filepath.Join(t.TempDir(), "subnetter.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "subnetter_allocation_runs_total")
	require.Contains(t, string(data), `subnetter_free_addresses{parent="192.168.1.0/24"} 144`)
	require.Contains(t, string(data), "klog_lines_total")

	require.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "subnetter.prom")))
}
