package subnetter

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"

	"github.com/kubeovn/subnetter/pkg/report"
	"github.com/kubeovn/subnetter/pkg/util"
)

const (
	// EnvPrefix prefixes the environment variables that provide flag defaults,
	// e.g. SUBNETTER_OUTPUT for --output
	EnvPrefix = "SUBNETTER_"

	defaultEnvFile = ".env"
)

var outputFormats = []string{report.OutputText, report.OutputTable, report.OutputJSON, report.OutputYAML}

// Configuration is the subnetter conf
type Configuration struct {
	Network     string
	Subnets     string
	HostCounts  []int
	Output      string
	LooseBounds bool
	MetricsFile string
	EnvFile     string
	NoBanner    bool
}

// VLSM reports whether host requirements were given
func (config *Configuration) VLSM() bool {
	return config.Subnets != ""
}

func ParseFlags(args []string) (*Configuration, error) {
	fs := pflag.NewFlagSet("subnetter", pflag.ContinueOnError)
	var (
		argSubnets     = fs.StringP("subnets", "s", "", "Comma-separated list of required host counts, enables VLSM allocation")
		argTable       = fs.BoolP("table", "t", false, "Display results in a table, same as --output=table")
		argOutput      = fs.StringP("output", "o", report.OutputText, "Output format, one of: "+strings.Join(outputFormats, "|"))
		argLooseBounds = fs.Bool("loose-bounds", false, "Accept a subnet as long as its network address is inside the parent network")
		argMetricsFile = fs.String("metrics-file", "", "Write allocation metrics in Prometheus text format to this file")
		argEnvFile     = fs.String("env-file", defaultEnvFile, "File with "+EnvPrefix+"* environment defaults, ignored if missing and not set explicitly")
		argNoBanner    = fs.Bool("no-banner", false, "Do not log the version banner")
	)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: subnetter [flags] <network-cidr>\n\nSubnetting and VLSM calculator, e.g. subnetter -s 50,20,10 192.168.1.0/24\n\nFlags:\n")
		fs.PrintDefaults()
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := loadEnvFile(*argEnvFile, fs.Changed("env-file")); err != nil {
		return nil, err
	}
	// environment defaults mark flags as changed, remember what the command line set
	explicitOutput := fs.Changed("output")
	skipEnv := []string{"env-file"}
	if fs.Changed("table") {
		skipEnv = append(skipEnv, "output")
	}
	if explicitOutput {
		skipEnv = append(skipEnv, "table")
	}
	if err := applyEnvDefaults(fs, skipEnv...); err != nil {
		return nil, err
	}

	config := &Configuration{
		Subnets:     strings.TrimSpace(*argSubnets),
		Output:      strings.ToLower(*argOutput),
		LooseBounds: *argLooseBounds,
		MetricsFile: *argMetricsFile,
		EnvFile:     *argEnvFile,
		NoBanner:    *argNoBanner,
	}

	var errs []error
	switch fs.NArg() {
	case 1:
		config.Network = fs.Arg(0)
	case 0:
		errs = append(errs, errors.New("missing network cidr argument"))
	default:
		errs = append(errs, fmt.Errorf("expected one network cidr argument, got %d: %s", fs.NArg(), strings.Join(fs.Args(), " ")))
	}
	if *argTable {
		if explicitOutput && config.Output != report.OutputTable {
			errs = append(errs, fmt.Errorf("--table conflicts with --output=%s", config.Output))
		}
		config.Output = report.OutputTable
	}
	if !slices.Contains(outputFormats, config.Output) {
		errs = append(errs, fmt.Errorf("unknown output format %q, must be one of %s", config.Output, strings.Join(outputFormats, ", ")))
	}
	if config.VLSM() {
		counts, err := util.ParseHostCounts(config.Subnets)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid --subnets: %w", err))
		}
		config.HostCounts = counts
	}
	if err := utilerrors.NewAggregate(errs); err != nil {
		return nil, err
	}

	klog.V(3).Infof("subnetter config is network=%s host counts=[%s] output=%s loose bounds=%v",
		config.Network, util.JoinInts(config.HostCounts), config.Output, config.LooseBounds)
	return config, nil
}

func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			klog.V(4).Infof("no env file %s, using environment variables", path)
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	// variables already set in the environment take precedence
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnvDefaults sets every flag not given on the command line from its
// environment variable, --loose-bounds from SUBNETTER_LOOSE_BOUNDS and so on.
func applyEnvDefaults(fs *pflag.FlagSet, skip ...string) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || slices.Contains(skip, f.Name) {
			return
		}
		name := EnvName(f.Name)
		value, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := fs.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s=%q: %w", name, value, err))
		}
	})
	return utilerrors.NewAggregate(errs)
}

// EnvName returns the environment variable for a flag name
func EnvName(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
