package ipam

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"
)

var (
	ErrOutOfRange            = errors.New("AddressOutOfRange")
	ErrInvalidIP             = errors.New("IPInvalid")
	ErrInvalidCIDR           = errors.New("CIDRInvalid")
	ErrInvalidPrefix         = errors.New("PrefixInvalid")
	ErrInvalidRequirement    = errors.New("RequirementInvalid")
	ErrInsufficientSpace     = errors.New("InsufficientSpace")
	ErrAddressSpaceExhausted = errors.New("AddressSpaceExhausted")
	ErrOverlap               = errors.New("SubnetOverlap")
)

// AllocatedSubnet is a subnet placed for one host requirement
type AllocatedSubnet struct {
	Network *Network
	Needed  int
}

// Failure is a host requirement that could not be placed
type Failure struct {
	Needed int
	Err    error
}

func (f Failure) Reason() string {
	switch {
	case errors.Is(f.Err, ErrInsufficientSpace):
		return fmt.Sprintf("Insufficient address space for the host requirement of %d.", f.Needed)
	case errors.Is(f.Err, ErrAddressSpaceExhausted):
		return fmt.Sprintf("Address space exhausted before the host requirement of %d.", f.Needed)
	case errors.Is(f.Err, ErrInvalidRequirement):
		return fmt.Sprintf("Invalid host requirement of %d, must be between 1 and %d.", f.Needed, int64(maxHosts))
	default:
		return fmt.Sprintf("Cannot allocate the host requirement of %d: %v.", f.Needed, f.Err)
	}
}

// Allocation is the outcome of one VLSM run over a parent network.
// Subnets and Failures are both in processing order, largest requirement first.
type Allocation struct {
	Parent   *Network
	Subnets  []AllocatedSubnet
	Failures []Failure

	looseBounds bool
}

// UsedAddresses counts every address of every allocated subnet
func (a *Allocation) UsedAddresses() uint64 {
	var used uint64
	for _, s := range a.Subnets {
		used += s.Network.Size()
	}
	return used
}

func (a *Allocation) FreeAddresses() uint64 {
	used := a.UsedAddresses()
	if used >= a.Parent.Size() {
		return 0
	}
	return a.Parent.Size() - used
}

// Err aggregates the per requirement failures, nil if every requirement was placed
func (a *Allocation) Err() error {
	errs := make([]error, 0, len(a.Failures))
	for _, f := range a.Failures {
		errs = append(errs, f.Err)
	}
	return utilerrors.NewAggregate(errs)
}

type allocateOptions struct {
	looseBounds bool
}

type Option func(*allocateOptions)

// WithLooseBounds accepts a candidate as soon as its network address is not
// past the parent broadcast address, even if the candidate itself is larger
// than what is left of the parent.
func WithLooseBounds() Option {
	return func(o *allocateOptions) {
		o.looseBounds = true
	}
}

// Allocate packs the host requirements into parent, largest first.
// Each subnet starts at the first address after the previous one, aligned to
// its own size. A requirement that does not fit is recorded and skipped, the
// remaining ones are still tried from the same position.
func Allocate(parent *Network, requirements []int, opts ...Option) *Allocation {
	var o allocateOptions
	for _, opt := range opts {
		opt(&o)
	}

	sorted := slices.Clone(requirements)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return cmp.Compare(b, a)
	})

	alloc := &Allocation{Parent: parent, looseBounds: o.looseBounds}
	fail := func(hosts int, err error) {
		klog.V(3).Infof("failed to allocate %d hosts in %s: %v", hosts, parent, err)
		alloc.Failures = append(alloc.Failures, Failure{Needed: hosts, Err: err})
	}

	cursor, exhausted := parent.IP(), false
	for _, hosts := range sorted {
		if exhausted {
			fail(hosts, fmt.Errorf("%w: no address left after %s", ErrAddressSpaceExhausted, parent.Broadcast()))
			continue
		}

		prefix, err := SmallestPrefix(hosts)
		if err != nil {
			fail(hosts, err)
			continue
		}
		candidate, err := NewNetwork(cursor, prefix)
		if err != nil {
			fail(hosts, err)
			continue
		}
		if !fits(parent, candidate, o.looseBounds) {
			fail(hosts, fmt.Errorf("%w: %s does not fit in %s", ErrInsufficientSpace, candidate, parent))
			continue
		}

		klog.V(4).Infof("allocate %s for %d hosts from %s", candidate, hosts, parent)
		alloc.Subnets = append(alloc.Subnets, AllocatedSubnet{Network: candidate, Needed: hosts})
		if next, err := candidate.Broadcast().Add(1); err != nil {
			exhausted = true
		} else {
			cursor = next
		}
	}
	return alloc
}

func fits(parent, candidate *Network, loose bool) bool {
	if loose {
		return !candidate.IP().GreaterThan(parent.Broadcast())
	}
	return parent.ContainsNetwork(candidate)
}
