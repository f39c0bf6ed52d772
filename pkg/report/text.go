package report

import (
	"bufio"
	"fmt"
	"io"
)

// TextRenderer prints one "Key: Value" line per field
type TextRenderer struct{}

func (TextRenderer) RenderSubnet(w io.Writer, info *SubnetInfo) error {
	bw := bufio.NewWriter(w)
	for _, f := range info.Fields() {
		fmt.Fprintf(bw, "%s: %s\n", f.Key, f.Value)
	}
	return bw.Flush()
}

func (TextRenderer) RenderVLSM(w io.Writer, r *VLSMReport) error {
	bw := bufio.NewWriter(w)
	for _, s := range r.Subnets {
		cells := s.Cells()
		fmt.Fprintf(bw, "%s %d:\n", SubnetHeaders[0], s.Index)
		for i := 1; i < len(SubnetHeaders); i++ {
			fmt.Fprintf(bw, "  %s: %s\n", SubnetHeaders[i], cells[i])
		}
		fmt.Fprintln(bw)
	}
	for _, f := range r.Failures {
		fmt.Fprintln(bw, f.Reason)
	}
	if len(r.Failures) != 0 {
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, SummaryLine(r.Summary))
	return bw.Flush()
}

func SummaryLine(s Summary) string {
	return fmt.Sprintf("Allocated %d of %d addresses in %s, %d free.",
		s.AllocatedAddresses, s.TotalAddresses, s.Parent, s.FreeAddresses)
}
