package report_test

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/yaml"

	"github.com/kubeovn/subnetter/pkg/ipam"
	"github.com/kubeovn/subnetter/pkg/report"
)

type fakeRenderer struct{}

func (fakeRenderer) RenderSubnet(w io.Writer, _ *report.SubnetInfo) error {
	_, err := io.WriteString(w, "subnet")
	return err
}

func (fakeRenderer) RenderVLSM(w io.Writer, _ *report.VLSMReport) error {
	_, err := io.WriteString(w, "vlsm")
	return err
}

var _ = Describe("Report", func() {
	var (
		network *ipam.Network
		alloc   *ipam.Allocation
		buf     *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		network, err = ipam.ParseCIDR("172.16.5.0/28")
		Expect(err).NotTo(HaveOccurred())

		parent, err := ipam.ParseCIDR("192.168.1.0/24")
		Expect(err).NotTo(HaveOccurred())
		alloc = ipam.Allocate(parent, []int{10, 50, 20, 0})

		buf = &bytes.Buffer{}
	})

	Context("Single network", func() {
		It("should describe the network", func() {
			info := report.NewSubnetInfo(network)
			Expect(*info).To(Equal(report.SubnetInfo{
				IPAddress:        "172.16.5.0/28",
				SubnetMask:       "255.255.255.240",
				WildcardMask:     "0.0.0.15",
				NetworkBits:      28,
				HostBits:         4,
				UsableHosts:      14,
				NetworkAddress:   "172.16.5.0",
				FirstIP:          "172.16.5.1",
				LastIP:           "172.16.5.14",
				BroadcastAddress: "172.16.5.15",
			}))
		})

		It("should list the fields in display order", func() {
			var keys []string
			for _, f := range report.NewSubnetInfo(network).Fields() {
				keys = append(keys, f.Key)
			}
			Expect(keys).To(Equal([]string{
				"IP Address", "Subnet Mask", "Wildcard Mask", "Network Bits", "Host Bits",
				"Usable Hosts", "Network Address", "First IP", "Last IP", "Broadcast Address",
			}))
		})

		It("should render as text", func() {
			Expect(report.TextRenderer{}.RenderSubnet(buf, report.NewSubnetInfo(network))).To(Succeed())
			Expect(buf.String()).To(HavePrefix("IP Address: 172.16.5.0/28\n"))
			Expect(buf.String()).To(ContainSubstring("Usable Hosts: 14\n"))
			Expect(buf.String()).To(HaveSuffix("Broadcast Address: 172.16.5.15\n"))
		})
	})

	Context("VLSM", func() {
		It("should number subnets in processing order", func() {
			r := report.NewVLSMReport(alloc)
			Expect(r.Subnets).To(HaveLen(3))
			Expect(r.Subnets[0]).To(Equal(report.SubnetRow{
				Index:          1,
				NetworkIP:      "192.168.1.0",
				BroadcastIP:    "192.168.1.63",
				FirstHostIP:    "192.168.1.1",
				LastHostIP:     "192.168.1.62",
				SubnetMask:     "255.255.255.192",
				SubnetIP:       "192.168.1.0/26",
				AvailableHosts: 62,
				NeededHosts:    50,
			}))
			Expect(r.Subnets[1].SubnetIP).To(Equal("192.168.1.64/27"))
			Expect(r.Subnets[1].NeededHosts).To(Equal(20))
			Expect(r.Subnets[2].SubnetIP).To(Equal("192.168.1.96/28"))
			Expect(r.Subnets[2].NeededHosts).To(Equal(10))
			Expect(r.Subnets[2].Cells()).To(HaveLen(len(report.SubnetHeaders)))
		})

		It("should report failures and usage", func() {
			r := report.NewVLSMReport(alloc)
			Expect(r.Failures).To(ConsistOf(report.FailureRow{
				NeededHosts: 0,
				Reason:      "Invalid host requirement of 0, must be between 1 and 4294967294.",
			}))
			Expect(r.Summary).To(Equal(report.Summary{
				Parent:             "192.168.1.0/24",
				TotalAddresses:     256,
				AllocatedAddresses: 112,
				FreeAddresses:      144,
			}))
		})

		It("should render as text", func() {
			Expect(report.TextRenderer{}.RenderVLSM(buf, report.NewVLSMReport(alloc))).To(Succeed())
			out := buf.String()
			Expect(out).To(HavePrefix("Subnet 1:\n  Network IP: 192.168.1.0\n  Broadcast IP: 192.168.1.63\n"))
			Expect(out).To(ContainSubstring("Subnet 3:\n"))
			Expect(out).To(ContainSubstring("  Subnet IP: 192.168.1.96/28\n  Available Hosts: 14\n  Needed Hosts: 10\n"))
			Expect(out).To(ContainSubstring("Invalid host requirement of 0"))
			Expect(strings.TrimSpace(out)).To(HaveSuffix("Allocated 112 of 256 addresses in 192.168.1.0/24, 144 free."))
		})

		It("should render as json", func() {
			Expect(report.JSONRenderer{}.RenderVLSM(buf, report.NewVLSMReport(alloc))).To(Succeed())
			var decoded report.VLSMReport
			Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
			Expect(decoded).To(Equal(*report.NewVLSMReport(alloc)))
			Expect(buf.String()).To(ContainSubstring(`"subnetIP": "192.168.1.64/27"`))
		})

		It("should render as yaml", func() {
			Expect(report.YAMLRenderer{}.RenderVLSM(buf, report.NewVLSMReport(alloc))).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("subnetIP: 192.168.1.0/26"))
			Expect(buf.String()).To(ContainSubstring("freeAddresses: 144"))

			var decoded report.VLSMReport
			Expect(yaml.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
			Expect(decoded.Subnets).To(HaveLen(3))
		})

		It("should omit failures when everything fits", func() {
			parent, err := ipam.ParseCIDR("10.0.0.0/24")
			Expect(err).NotTo(HaveOccurred())
			r := report.NewVLSMReport(ipam.Allocate(parent, []int{2}))
			Expect(report.JSONRenderer{}.RenderVLSM(buf, r)).To(Succeed())
			Expect(buf.String()).NotTo(ContainSubstring("failures"))
		})
	})

	Context("Registry", func() {
		It("should provide the built-in renderers", func() {
			for _, name := range []string{report.OutputText, report.OutputJSON, report.OutputYAML} {
				_, ok := report.Lookup(name)
				Expect(ok).To(BeTrue(), name)
			}
			Expect(report.Names()).To(ContainElements(report.OutputText, report.OutputJSON, report.OutputYAML))
		})

		It("should not provide the table renderer unless linked", func() {
			_, ok := report.Lookup(report.OutputTable)
			Expect(ok).To(BeFalse())
		})

		It("should register additional renderers", func() {
			report.Register("fake", fakeRenderer{})
			r, ok := report.Lookup("fake")
			Expect(ok).To(BeTrue())
			Expect(r.RenderVLSM(buf, nil)).To(Succeed())
			Expect(buf.String()).To(Equal("vlsm"))
		})
	})
})
