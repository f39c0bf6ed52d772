package ipam

import (
	"fmt"
	"net"
	"net/netip"

	"k8s.io/klog/v2"
)

const (
	maxPrefixLen = 32
	// prefixes longer than this have no network/broadcast reservation
	maxHostPrefixLen = 30
)

// Network is an IPv4 network whose base address always has the host bits zeroed.
// Everything else is derived from the base address and the prefix length.
type Network struct {
	ip     IP
	prefix int
}

// NewNetwork returns the network of the given prefix length that contains start.
// start does not need to be aligned: it is floored to the prefix boundary.
func NewNetwork(start IP, prefix int) (*Network, error) {
	if prefix < 0 || prefix > maxPrefixLen {
		return nil, fmt.Errorf("%w: /%d", ErrInvalidPrefix, prefix)
	}
	return &Network{ip: start & maskOf(prefix), prefix: prefix}, nil
}

// ParseCIDR parses an IPv4 CIDR such as 192.168.1.0/24. Host bits are masked off.
func ParseCIDR(s string) (*Network, error) {
	ip, cidr, err := net.ParseCIDR(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCIDR, err)
	}
	ones, bits := cidr.Mask.Size()
	if bits != 8*net.IPv4len || ip.To4() == nil {
		return nil, fmt.Errorf("%w: %s is not an IPv4 cidr", ErrInvalidCIDR, s)
	}
	base, err := NewIP(cidr.IP.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCIDR, err)
	}
	if !ip.Equal(cidr.IP) {
		klog.Warningf("%s has host bits set, using network %s", s, cidr.String())
	}
	return NewNetwork(base, ones)
}

func maskOf(prefix int) IP {
	return IP(^uint32(0) << (maxPrefixLen - prefix))
}

func (n *Network) IP() IP {
	return n.ip
}

func (n *Network) PrefixLen() int {
	return n.prefix
}

func (n *Network) NetworkBits() int {
	return n.prefix
}

func (n *Network) HostBits() int {
	return maxPrefixLen - n.prefix
}

func (n *Network) Mask() IP {
	return maskOf(n.prefix)
}

// Wildcard is the bitwise complement of the mask
func (n *Network) Wildcard() IP {
	return ^n.Mask()
}

func (n *Network) Broadcast() IP {
	return n.ip | n.Wildcard()
}

// Size returns the number of addresses, network and broadcast included
func (n *Network) Size() uint64 {
	return uint64(1) << n.HostBits()
}

// UsableHosts is zero for /31 and /32, which have no host range
func (n *Network) UsableHosts() uint64 {
	if n.prefix > maxHostPrefixLen {
		return 0
	}
	return n.Size() - 2
}

// FirstIP returns first usable ip address in the network.
// Point-to-point and host networks return the network address itself.
func (n *Network) FirstIP() IP {
	if n.UsableHosts() == 0 {
		return n.ip
	}
	return n.ip + 1
}

// LastIP returns last usable ip address in the network.
// Point-to-point and host networks return the broadcast address itself.
func (n *Network) LastIP() IP {
	if n.UsableHosts() == 0 {
		return n.Broadcast()
	}
	return n.Broadcast() - 1
}

func (n *Network) Range() *IPRange {
	return NewIPRange(n.ip, n.Broadcast())
}

func (n *Network) Contains(ip IP) bool {
	return ip&n.Mask() == n.ip
}

// ContainsNetwork reports whether o lies entirely inside n
func (n *Network) ContainsNetwork(o *Network) bool {
	return n.prefix <= o.prefix && n.Contains(o.ip)
}

func (n *Network) Prefix() netip.Prefix {
	return netip.PrefixFrom(n.ip.Addr(), n.prefix)
}

func (n *Network) Equal(o *Network) bool {
	return n.ip == o.ip && n.prefix == o.prefix
}

func (n *Network) String() string {
	return fmt.Sprintf("%s/%d", n.ip, n.prefix)
}
