package subnetter

import (
	"errors"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/kubeovn/subnetter/pkg/subnetter"
	"github.com/kubeovn/subnetter/pkg/util"
	"github.com/kubeovn/subnetter/versions"
)

// exit code when the report was printed but some host requirements were not met
const exitUnsatisfied = 2

func CmdMain() {
	defer klog.Flush()

	config, err := subnetter.ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		util.LogFatalAndExit(err, "failed to parse config")
	}
	if !config.NoBanner {
		klog.Info(versions.String())
	}

	err = subnetter.Run(config, os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, subnetter.ErrUnsatisfied):
		klog.Warning(err)
		klog.FlushAndExit(klog.ExitFlushTimeout, exitUnsatisfied)
	default:
		util.LogFatalAndExit(err, "failed to calculate subnets of %s", config.Network)
	}
}
