package component

import "github.com/lixenwraith/antcolony/core"

// WindupComponent is a pending ranged launch counted down in frames
// Removing the owning unit removes the windup, which is the only cancellation path besides target death
type WindupComponent struct {
	Target    core.Entity
	Remaining int
}
