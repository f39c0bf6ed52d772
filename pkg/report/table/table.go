// Package table renders reports as boxed terminal tables.
// Importing it registers the "table" output format.
package table

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/kubeovn/subnetter/pkg/report"
)

func init() {
	// Disable styling if we are not in a standard terminal, as control sequences would not work.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableStyling()
	}
	report.Register(report.OutputTable, Renderer{})
}

type Renderer struct{}

func (Renderer) RenderSubnet(w io.Writer, info *report.SubnetInfo) error {
	data := pterm.TableData{{"Field", "Value"}}
	for _, f := range info.Fields() {
		data = append(data, []string{f.Key, f.Value})
	}
	return render(w, data)
}

func (Renderer) RenderVLSM(w io.Writer, r *report.VLSMReport) error {
	data := pterm.TableData{report.SubnetHeaders}
	for _, s := range r.Subnets {
		data = append(data, s.Cells())
	}
	if err := render(w, data); err != nil {
		return err
	}

	if len(r.Failures) != 0 {
		failures := pterm.TableData{{"Needed Hosts", "Reason"}}
		for _, f := range r.Failures {
			failures = append(failures, []string{strconv.Itoa(f.NeededHosts), f.Reason})
		}
		if err := render(w, failures); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, report.SummaryLine(r.Summary))
	return err
}

func render(w io.Writer, data pterm.TableData) error {
	text, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
