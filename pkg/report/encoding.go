package report

import (
	"encoding/json"
	"io"

	"sigs.k8s.io/yaml"
)

type JSONRenderer struct{}

func (JSONRenderer) RenderSubnet(w io.Writer, info *SubnetInfo) error {
	return writeJSON(w, info)
}

func (JSONRenderer) RenderVLSM(w io.Writer, r *VLSMReport) error {
	return writeJSON(w, r)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type YAMLRenderer struct{}

func (YAMLRenderer) RenderSubnet(w io.Writer, info *SubnetInfo) error {
	return writeYAML(w, info)
}

func (YAMLRenderer) RenderVLSM(w io.Writer, r *VLSMReport) error {
	return writeYAML(w, r)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
