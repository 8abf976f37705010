package insights

import (
	"regexp"
	"strings"

	"testnetdir.app/pulse/internal/model"
)

// Category names surfaced in snapshots.
const (
	CategoryZK     = "ZK"
	CategoryRollup = "Rollup"
)

var tagCategoryPattern = regexp.MustCompile(`(?i)(zk|rollup|modular|points)`)

// deriveCategory resolves a category for a catalog entity. Priority order is
// a contract: explicit catalog category, then the first tag matching the
// category pattern, then a substring check on the network field. Returns ""
// when nothing applies.
func deriveCategory(t model.Testnet) string {
	if len(t.Categories) > 0 && t.Categories[0] != "" {
		return t.Categories[0]
	}

	for _, tag := range t.Tags {
		if match := tagCategoryPattern.FindString(tag); match != "" {
			return canonicalCategory(match)
		}
	}

	network := strings.ToLower(t.Network)
	if strings.Contains(network, "zk") {
		return CategoryZK
	}
	if strings.Contains(network, "rollup") || strings.Contains(network, "l2") {
		return CategoryRollup
	}
	return ""
}

func canonicalCategory(match string) string {
	switch strings.ToLower(match) {
	case "zk":
		return CategoryZK
	case "rollup":
		return CategoryRollup
	case "modular":
		return "Modular"
	case "points":
		return "Points"
	}
	return ""
}
