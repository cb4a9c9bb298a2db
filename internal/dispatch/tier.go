// Package dispatch implements the outbound request queue for the AnyCommerce
// storefront client. UI and business logic submit JSON API call descriptors
// tagged with a consistency tier; a flush driver periodically extracts
// ready-to-send batches and ships them to the bound JSON API endpoint.
//
// QUEUE TIERS:
// The queue maintains three fully independent FIFO buffers, one per tier:
//
//   - Mutable: standard requests that may be aborted wholesale before they
//     reach the network (stale search-as-you-type lookups and similar)
//   - Immutable: mission-critical requests (cart mutations, checkout) that
//     are never aborted and execute strictly one at a time
//   - Passive: fire-and-forget requests (analytics pings) that batch like
//     Mutable but can never be aborted
//
// No request ever moves between tiers or is reordered within one. Once a
// batch has been extracted the queue forgets it; cancellation of in-flight
// network calls is entirely the transport layer's concern.
package dispatch

import (
	"errors"
	"fmt"
)

// Tier classifies a request by its consistency requirement. The set is
// closed: exactly three tiers exist and their ordering/abort contracts
// are fixed at design time.
type Tier int

const (
	// TierMutable holds standard requests. FIFO within the tier, and the
	// only tier whose queued-but-unsent work can be cancelled.
	TierMutable Tier = iota

	// TierImmutable holds mission-critical requests. FIFO, strictly one
	// in flight, and once accepted a request WILL be offered for delivery.
	TierImmutable

	// TierPassive holds fire-and-forget requests. Batched like Mutable
	// but never abortable.
	TierPassive
)

// ErrUnknownTier is returned when an operation names a tier outside the
// fixed enumeration. This is a programming error at the call boundary and
// is rejected before any buffer is touched.
var ErrUnknownTier = errors.New("unknown queue tier")

// tierNames maps each tier to its wire selector value.
var tierNames = map[Tier]string{
	TierMutable:   "mutable",
	TierImmutable: "immutable",
	TierPassive:   "passive",
}

// String returns the lowercase selector value used on the host boundary.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Valid reports whether t is one of the three fixed tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// ParseTier converts a tier selector string ("mutable", "immutable",
// "passive") into its Tier value. Selector values are the only tier
// representation that crosses the host boundary, so this is where unknown
// tiers are rejected.
func ParseTier(s string) (Tier, error) {
	for tier, name := range tierNames {
		if name == s {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Tiers returns all tiers in flush order. The flush driver iterates this
// slice so mutable work drains before passive work within one cycle.
func Tiers() []Tier {
	return []Tier{TierMutable, TierImmutable, TierPassive}
}
