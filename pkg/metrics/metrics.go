package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubeovn/subnetter/pkg/ipam"
)

const (
	ReasonInsufficientSpace     = "insufficient_space"
	ReasonInvalidRequirement    = "invalid_requirement"
	ReasonAddressSpaceExhausted = "address_space_exhausted"
	ReasonOther                 = "other"
)

var (
	allocationRunsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subnetter_allocation_runs_total",
			Help: "The number of VLSM allocation runs",
		})
	subnetsAllocatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subnetter_subnets_allocated_total",
			Help: "The number of subnets allocated",
		})
	allocationFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subnetter_allocation_failures_total",
			Help: "The number of host requirements that could not be allocated",
		},
		[]string{
			"reason",
		})
	allocatedAddressesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "subnetter_allocated_addresses",
			Help: "Addresses taken by allocated subnets in the last run",
		},
		[]string{
			"parent",
		})
	freeAddressesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "subnetter_free_addresses",
			Help: "Addresses of the parent network left after the last run",
		},
		[]string{
			"parent",
		})
	subnetPrefixHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "subnetter_subnet_prefix_length",
			Help:    "Prefix length of allocated subnets",
			Buckets: prometheus.LinearBuckets(8, 2, 12),
		})
)

var (
	// Registry holds every subnetter collector
	Registry = prometheus.NewRegistry()

	registerOnce sync.Once
)

func InitSubnetterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(allocationRunsCounter)
		Registry.MustRegister(subnetsAllocatedCounter)
		Registry.MustRegister(allocationFailuresCounter)
		Registry.MustRegister(allocatedAddressesGauge)
		Registry.MustRegister(freeAddressesGauge)
		Registry.MustRegister(subnetPrefixHistogram)
		registerKlogMetrics()
	})
}

func ObserveAllocation(alloc *ipam.Allocation) {
	allocationRunsCounter.Inc()
	subnetsAllocatedCounter.Add(float64(len(alloc.Subnets)))
	for _, s := range alloc.Subnets {
		subnetPrefixHistogram.Observe(float64(s.Network.PrefixLen()))
	}
	for _, f := range alloc.Failures {
		allocationFailuresCounter.WithLabelValues(FailureReason(f.Err)).Inc()
	}

	parent := alloc.Parent.String()
	allocatedAddressesGauge.WithLabelValues(parent).Set(float64(alloc.UsedAddresses()))
	freeAddressesGauge.WithLabelValues(parent).Set(float64(alloc.FreeAddresses()))
}

// FailureReason maps an allocation error to its metric label
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ipam.ErrInsufficientSpace):
		return ReasonInsufficientSpace
	case errors.Is(err, ipam.ErrInvalidRequirement):
		return ReasonInvalidRequirement
	case errors.Is(err, ipam.ErrAddressSpaceExhausted):
		return ReasonAddressSpaceExhausted
	default:
		return ReasonOther
	}
}
