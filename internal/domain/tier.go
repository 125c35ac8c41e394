package domain

// Tier is a server-controlled service level. It is the only vocabulary the
// client may use to influence routing; raw model identifiers never cross the
// API boundary.
type Tier string

const (
	TierLite   Tier = "lite"
	TierMedium Tier = "medium"
	TierDeep   Tier = "deep"
)

var tierWhitelist = map[Tier]bool{
	TierLite: true, TierMedium: true, TierDeep: true,
}

// question length above which a reading is considered involved enough for
// the medium tier.
const longQuestionChars = 220

// RouteTier maps a normalized request to a tier. An explicit whitelisted
// tier wins outright; otherwise the decision is a pure function of depth,
// spread type, card count and question length.
func RouteTier(req ReadingRequest) Tier {
	if t := Tier(req.ExplicitTier); tierWhitelist[t] {
		return t
	}

	var tier Tier
	switch {
	case req.Depth == DepthDeep,
		req.SpreadType == SpreadCelticCross,
		req.SpreadType == SpreadShadow,
		len(req.Cards) >= 8:
		tier = TierDeep
	case len(req.Cards) >= 5,
		len(req.Question) > longQuestionChars:
		tier = TierMedium
	default:
		tier = TierLite
	}

	// The switch only produces whitelisted tiers; re-check anyway so a
	// future edit cannot route an unknown tier to the provider.
	if !tierWhitelist[tier] {
		return TierLite
	}
	return tier
}
