package ipam

import (
	"fmt"

	"github.com/gaissmai/bart"
)

// Validate checks that no two allocated subnets overlap and, unless the
// allocation was made with loose bounds, that all of them lie inside the parent.
func (a *Allocation) Validate() error {
	tbl := new(bart.Table[int])
	for i, s := range a.Subnets {
		pfx := s.Network.Prefix()
		if tbl.OverlapsPrefix(pfx) {
			return fmt.Errorf("%w: subnet %d %s overlaps an earlier subnet", ErrOverlap, i+1, pfx)
		}
		if !a.looseBounds && !a.Parent.ContainsNetwork(s.Network) {
			return fmt.Errorf("%w: subnet %d %s is outside %s", ErrOutOfRange, i+1, pfx, a.Parent)
		}
		tbl.Insert(pfx, i)
	}
	return nil
}
