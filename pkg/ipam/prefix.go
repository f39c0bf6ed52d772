package ipam

import (
	"fmt"
	"math/bits"
)

const (
	// smallest block handed out, regardless of how few hosts are needed
	minBlockPrefixLen = 30
	// network and broadcast address
	reservedAddrs = 2
	maxHosts      = 1<<maxPrefixLen - reservedAddrs
)

// SmallestPrefix returns the longest prefix length whose network can hold
// hosts usable addresses. Requirements of one or two hosts get a /30.
func SmallestPrefix(hosts int) (int, error) {
	if hosts <= 0 {
		return 0, fmt.Errorf("%w: %d hosts, must be positive", ErrInvalidRequirement, hosts)
	}
	if hosts <= 2 {
		return minBlockPrefixLen, nil
	}
	if int64(hosts) > maxHosts {
		return 0, fmt.Errorf("%w: %d hosts exceed the IPv4 address space", ErrInvalidRequirement, hosts)
	}
	// bit length of n-1 is ceil(log2(n)), exact for powers of two
	hostBits := bits.Len64(uint64(hosts) + reservedAddrs - 1)
	return maxPrefixLen - hostBits, nil
}
