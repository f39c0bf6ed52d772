package ipam

import "fmt"

// IPRange represents an IP range of [start, end]
type IPRange struct {
	start, end IP
}

func NewIPRange(start, end IP) *IPRange {
	if start.GreaterThan(end) {
		start, end = end, start
	}
	return &IPRange{start, end}
}

func (r *IPRange) Start() IP {
	return r.start
}

func (r *IPRange) End() IP {
	return r.end
}

// Count returns the number of addresses in the range, up to 2^32
func (r *IPRange) Count() uint64 {
	return uint64(r.end) - uint64(r.start) + 1
}

func (r *IPRange) Contains(ip IP) bool {
	return !r.start.GreaterThan(ip) && !r.end.LessThan(ip)
}

func (r *IPRange) Overlaps(o *IPRange) bool {
	return !r.end.LessThan(o.start) && !o.end.LessThan(r.start)
}

func (r *IPRange) String() string {
	if r.start.Equal(r.end) {
		return r.start.String()
	}
	return fmt.Sprintf("%s-%s", r.start.String(), r.end.String())
}
