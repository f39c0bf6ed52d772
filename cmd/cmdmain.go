package main

import (
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/kubeovn/subnetter/cmd/subnetter"
)

const CmdSubnetter = "subnetter"

func main() {
	// installed as subnetter, but `go run ./cmd` and renamed copies run it too
	if cmd := filepath.Base(os.Args[0]); cmd != CmdSubnetter {
		klog.V(3).Infof("running %s as %s", cmd, CmdSubnetter)
	}
	subnetter.CmdMain()
}
