package report

import (
	"io"
	"slices"
	"sync"
)

const (
	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Renderer writes reports in one output format
type Renderer interface {
	RenderSubnet(w io.Writer, info *SubnetInfo) error
	RenderVLSM(w io.Writer, r *VLSMReport) error
}

var (
	renderersLock sync.RWMutex
	renderers     = map[string]Renderer{}
)

// Register makes a renderer available under name, replacing any previous one.
// Optional renderers call it from an init function of their own package.
func Register(name string, r Renderer) {
	renderersLock.Lock()
	defer renderersLock.Unlock()
	renderers[name] = r
}

func Lookup(name string) (Renderer, bool) {
	renderersLock.RLock()
	defer renderersLock.RUnlock()
	r, ok := renderers[name]
	return r, ok
}

// Names returns the registered output formats, sorted
func Names() []string {
	renderersLock.RLock()
	defer renderersLock.RUnlock()
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	Register(OutputText, TextRenderer{})
	Register(OutputJSON, JSONRenderer{})
	Register(OutputYAML, YAMLRenderer{})
}
