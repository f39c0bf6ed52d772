//go:build !notable

package subnetter

// build with -tags notable for a binary without pterm
import _ "github.com/kubeovn/subnetter/pkg/report/table"
