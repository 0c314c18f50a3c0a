package scene

import (
	"fmt"
	"log/slog"

	"github.com/almindor/texel-types/runtime"
	v1 "github.com/almindor/texel-types/scene/v1"
	v2 "github.com/almindor/texel-types/scene/v2"
	v3 "github.com/almindor/texel-types/scene/v3"
)

// ChainBrokenError reports a missing adjacent-version converter. The chain
// tables are fixed at init for every released version, so hitting this is an
// incomplete version rollout, a deployment defect. Hosts should treat it as
// fatal for the affected file, not as a recoverable runtime condition.
type ChainBrokenError struct {
	From runtime.Version
	To   runtime.Version
}

func (e *ChainBrokenError) Error() string {
	return fmt.Sprintf("conversion chain broken: no converter from %s to %s", e.From, e.To)
}

type upgradeStep func(runtime.Versioned) runtime.Versioned

type downgradeStep func(runtime.Versioned) (runtime.Versioned, Loss)

// Adjacent converter chains keyed by source version. Populated once here
// and never mutated, so concurrent migrations need no coordination.
var (
	upgrades = map[runtime.Version]upgradeStep{
		v1.Version: func(value runtime.Versioned) runtime.Versioned {
			return UpgradeFromV1(value.(*v1.Scene))
		},
		v2.Version: func(value runtime.Versioned) runtime.Versioned {
			return UpgradeFromV2(value.(*v2.Scene))
		},
	}
	downgrades = map[runtime.Version]downgradeStep{
		v2.Version: func(value runtime.Versioned) (runtime.Versioned, Loss) {
			return DowngradeToV1(value.(*v2.Scene))
		},
		v3.Version: func(value runtime.Versioned) (runtime.Versioned, Loss) {
			return DowngradeToV2(value.(*v3.Scene))
		},
	}
)

// Migrate converts a scene of any released version to the target version by
// composing the minimal chain of single-step converters, ascending for
// upgrades and descending for downgrades. A value already at the target
// version is returned unchanged without invoking any converter. The returned
// Loss accumulates the fields discarded along a downgrade chain and is empty
// for upgrades.
//
// Migrating from A directly to C is observationally equal to migrating A to
// B and then B to C for any B on the path, so multi-step chains can later be
// collapsed into single hops without changing behavior.
func Migrate(value runtime.Versioned, target runtime.Version) (runtime.Versioned, Loss, error) {
	source := value.GetVersion()
	if !Scheme.IsRegistered(source) {
		return nil, Loss{}, &runtime.UnknownVersionError{Version: source, Highest: CanonicalVersion}
	}
	if _, isRaw := value.(*runtime.Raw); isRaw {
		return nil, Loss{}, fmt.Errorf("cannot migrate a raw scene payload, decode it first")
	}
	if !Scheme.IsRegistered(target) {
		return nil, Loss{}, &runtime.UnknownVersionError{Version: target, Highest: CanonicalVersion}
	}

	if source == target {
		return value, Loss{}, nil
	}

	if target > source {
		for current := source; current < target; current++ {
			step, exists := upgrades[current]
			if !exists {
				return nil, Loss{}, &ChainBrokenError{From: current, To: current + 1}
			}
			value = step(value)
			slog.Debug("upgraded scene", "from", current, "to", current+1)
		}
		return value, Loss{}, nil
	}

	var loss Loss
	for current := source; current > target; current-- {
		step, exists := downgrades[current]
		if !exists {
			return nil, Loss{}, &ChainBrokenError{From: current, To: current - 1}
		}
		var stepLoss Loss
		value, stepLoss = step(value)
		loss = loss.Merge(stepLoss)
		slog.Debug("downgraded scene", "from", current, "to", current-1, "loss", stepLoss)
	}
	return value, loss, nil
}

// Canonical migrates a scene of any released version to the canonical
// (highest known) version.
func Canonical(value runtime.Versioned) (*v3.Scene, error) {
	migrated, _, err := Migrate(value, CanonicalVersion)
	if err != nil {
		return nil, err
	}
	return migrated.(*v3.Scene), nil
}
