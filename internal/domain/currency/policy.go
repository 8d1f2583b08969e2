package currency

import "github.com/meriter/backend/internal/entity"

// ArchetypeRule is the currency policy of one community archetype. All
// archetype-specific behavior lives in this table; nothing else in the
// engine compares community types.
type ArchetypeRule struct {
	AllowQuota  bool
	AllowWallet bool

	// QuotaReason and WalletReason explain a forbidden source to the voter.
	QuotaReason  string
	WalletReason string
}

var archetypeRules = map[entity.CommunityType]ArchetypeRule{
	entity.CommunityMarathonOfGood: {
		AllowQuota:   true,
		AllowWallet:  false,
		WalletReason: "Marathon of Good only allows quota voting",
	},
	entity.CommunityFutureVision: {
		AllowQuota:   false,
		AllowWallet:  true,
		QuotaReason:  "Future Vision only allows wallet voting",
	},
}

var defaultRule = ArchetypeRule{AllowQuota: true, AllowWallet: true}

// RuleOf returns the archetype rule of a community type.
func RuleOf(typ entity.CommunityType) ArchetypeRule {
	if rule, ok := archetypeRules[typ]; ok {
		return rule
	}

	return defaultRule
}
