package component

import "github.com/lixenwraith/antcolony/core"

// OwnerComponent is a weak back-reference from a summoned unit to its boss
type OwnerComponent struct {
	Owner core.Entity
}
