package report

import (
	"strconv"

	"github.com/kubeovn/subnetter/pkg/ipam"
)

// Field is one labelled value of a single network report
type Field struct {
	Key   string
	Value string
}

// SubnetInfo describes a single network
type SubnetInfo struct {
	IPAddress        string `json:"ipAddress"`
	SubnetMask       string `json:"subnetMask"`
	WildcardMask     string `json:"wildcardMask"`
	NetworkBits      int    `json:"networkBits"`
	HostBits         int    `json:"hostBits"`
	UsableHosts      uint64 `json:"usableHosts"`
	NetworkAddress   string `json:"networkAddress"`
	FirstIP          string `json:"firstIP"`
	LastIP           string `json:"lastIP"`
	BroadcastAddress string `json:"broadcastAddress"`
}

func NewSubnetInfo(n *ipam.Network) *SubnetInfo {
	return &SubnetInfo{
		IPAddress:        n.String(),
		SubnetMask:       n.Mask().String(),
		WildcardMask:     n.Wildcard().String(),
		NetworkBits:      n.NetworkBits(),
		HostBits:         n.HostBits(),
		UsableHosts:      n.UsableHosts(),
		NetworkAddress:   n.IP().String(),
		FirstIP:          n.FirstIP().String(),
		LastIP:           n.LastIP().String(),
		BroadcastAddress: n.Broadcast().String(),
	}
}

// Fields returns the report in display order
func (s *SubnetInfo) Fields() []Field {
	return []Field{
		{"IP Address", s.IPAddress},
		{"Subnet Mask", s.SubnetMask},
		{"Wildcard Mask", s.WildcardMask},
		{"Network Bits", strconv.Itoa(s.NetworkBits)},
		{"Host Bits", strconv.Itoa(s.HostBits)},
		{"Usable Hosts", strconv.FormatUint(s.UsableHosts, 10)},
		{"Network Address", s.NetworkAddress},
		{"First IP", s.FirstIP},
		{"Last IP", s.LastIP},
		{"Broadcast Address", s.BroadcastAddress},
	}
}

// SubnetHeaders are the column titles of a SubnetRow
var SubnetHeaders = []string{
	"Subnet", "Network IP", "Broadcast IP", "First Host IP", "Last Host IP",
	"Subnet Mask", "Subnet IP", "Available Hosts", "Needed Hosts",
}

type SubnetRow struct {
	Index          int    `json:"subnet"`
	NetworkIP      string `json:"networkIP"`
	BroadcastIP    string `json:"broadcastIP"`
	FirstHostIP    string `json:"firstHostIP"`
	LastHostIP     string `json:"lastHostIP"`
	SubnetMask     string `json:"subnetMask"`
	SubnetIP       string `json:"subnetIP"`
	AvailableHosts uint64 `json:"availableHosts"`
	NeededHosts    int    `json:"neededHosts"`
}

// Cells returns the row in SubnetHeaders order
func (r SubnetRow) Cells() []string {
	return []string{
		strconv.Itoa(r.Index),
		r.NetworkIP,
		r.BroadcastIP,
		r.FirstHostIP,
		r.LastHostIP,
		r.SubnetMask,
		r.SubnetIP,
		strconv.FormatUint(r.AvailableHosts, 10),
		strconv.Itoa(r.NeededHosts),
	}
}

type FailureRow struct {
	NeededHosts int    `json:"neededHosts"`
	Reason      string `json:"reason"`
}

type Summary struct {
	Parent             string `json:"parent"`
	TotalAddresses     uint64 `json:"totalAddresses"`
	AllocatedAddresses uint64 `json:"allocatedAddresses"`
	FreeAddresses      uint64 `json:"freeAddresses"`
}

// VLSMReport is the presentation form of an allocation
type VLSMReport struct {
	Summary  Summary      `json:"summary"`
	Subnets  []SubnetRow  `json:"subnets"`
	Failures []FailureRow `json:"failures,omitempty"`
}

func NewVLSMReport(alloc *ipam.Allocation) *VLSMReport {
	r := &VLSMReport{
		Summary: Summary{
			Parent:             alloc.Parent.String(),
			TotalAddresses:     alloc.Parent.Size(),
			AllocatedAddresses: alloc.UsedAddresses(),
			FreeAddresses:      alloc.FreeAddresses(),
		},
		Subnets: make([]SubnetRow, 0, len(alloc.Subnets)),
	}
	for i, s := range alloc.Subnets {
		n := s.Network
		r.Subnets = append(r.Subnets, SubnetRow{
			Index:          i + 1,
			NetworkIP:      n.IP().String(),
			BroadcastIP:    n.Broadcast().String(),
			FirstHostIP:    n.FirstIP().String(),
			LastHostIP:     n.LastIP().String(),
			SubnetMask:     n.Mask().String(),
			SubnetIP:       n.String(),
			AvailableHosts: n.UsableHosts(),
			NeededHosts:    s.Needed,
		})
	}
	for _, f := range alloc.Failures {
		r.Failures = append(r.Failures, FailureRow{NeededHosts: f.Needed, Reason: f.Reason()})
	}
	return r
}
