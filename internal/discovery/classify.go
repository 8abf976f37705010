package discovery

import "strings"

// CategoryRule pairs a category label with the keywords that select it.
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultCategoryRules returns the standard classification table. Order is a
// priority contract, not an implementation detail: rules are evaluated top
// to bottom and the first keyword hit wins, so reordering changes observable
// classification.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Category: "ZK", Keywords: []string{"zk", "zero knowledge", "zero-knowledge"}},
		{Category: "Layer2", Keywords: []string{"layer 2", "layer2", "l2", "optimistic"}},
		{Category: "Modular", Keywords: []string{"modular", "data availability", "celestia"}},
		{Category: "Points", Keywords: []string{"points", "airdrop", "incentive"}},
		{Category: "Appchain", Keywords: []string{"appchain", "app-chain", "cosmos sdk", "rollapp"}},
	}
}

// classify assigns a category to a candidate by case-insensitive substring
// match against its description and network. Pure function of the inputs and
// rule order; nil when nothing matches.
func classify(rules []CategoryRule, description, network string) *string {
	haystack := strings.ToLower(description + " " + network)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, keyword) {
				category := rule.Category
				return &category
			}
		}
	}
	return nil
}
