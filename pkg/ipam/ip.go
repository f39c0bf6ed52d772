package ipam

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"net/netip"
)

// IP is an IPv4 address held as a 32-bit unsigned integer
type IP uint32

func NewIP(s string) (IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIP, s)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return 0, fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidIP, s)
	}
	return IP(binary.BigEndian.Uint32(ip4)), nil
}

// IPFromAddr converts an IPv4 (or IPv4-mapped IPv6) netip.Addr
func IPFromAddr(addr netip.Addr) (IP, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, fmt.Errorf("%w: %s is not an IPv4 address", ErrInvalidIP, addr)
	}
	b := addr.As4()
	return IP(binary.BigEndian.Uint32(b[:])), nil
}

func (a IP) Addr() netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	return netip.AddrFrom4(b)
}

func (a IP) Equal(b IP) bool {
	return a == b
}

func (a IP) LessThan(b IP) bool {
	return a < b
}

func (a IP) GreaterThan(b IP) bool {
	return a > b
}

// Add returns a+num, failing with ErrOutOfRange past 255.255.255.255
func (a IP) Add(num uint32) (IP, error) {
	if uint32(a) > math.MaxUint32-num {
		return 0, fmt.Errorf("%w: %s + %d", ErrOutOfRange, a, num)
	}
	return a + IP(num), nil
}

// Sub returns a-num, failing with ErrOutOfRange below 0.0.0.0
func (a IP) Sub(num uint32) (IP, error) {
	if uint32(a) < num {
		return 0, fmt.Errorf("%w: %s - %d", ErrOutOfRange, a, num)
	}
	return a - IP(num), nil
}

func (a IP) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

func (a IP) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *IP) UnmarshalText(text []byte) error {
	ip, err := NewIP(string(text))
	if err != nil {
		return err
	}
	*a = ip
	return nil
}
