package persona

// MaxTraits caps the personality descriptors in a prompt.
const MaxTraits = 5

// categoryTraits maps each category to its two descriptors. Categories not
// listed contribute nothing.
var categoryTraits = map[string][2]string{
	"fire":     {"passionate", "energetic"},
	"water":    {"calm", "adaptable"},
	"grass":    {"nurturing", "patient"},
	"electric": {"energetic", "quick-witted"},
	"psychic":  {"intelligent", "thoughtful"},
	"dark":     {"cunning", "cautious"},
	"fairy":    {"playful", "kind"},
	"ghost":    {"mysterious", "enigmatic"},
	"dragon":   {"proud", "powerful"},
	"normal":   {"adaptable", "balanced"},
	"fighting": {"determined", "disciplined"},
	"poison":   {"resilient", "resourceful"},
	"ground":   {"stable", "reliable"},
	"flying":   {"free-spirited", "adventurous"},
	"rock":     {"sturdy", "dependable"},
	"bug":      {"curious", "persistent"},
	"ice":      {"cool-headed", "serene"},
	"steel":    {"resilient", "strong-willed"},
}

var (
	legendaryTraits = [2]string{"majestic", "powerful"}
	mythicalTraits  = [2]string{"mystical", "ancient"}
)

// DeriveTraits collects descriptors for the categories in order, then the
// legendary and mythical ones, dropping repeats and keeping the first
// MaxTraits.
func DeriveTraits(categories []string, legendary, mythical bool) []string {
	var candidates []string
	for _, c := range categories {
		if pair, ok := categoryTraits[c]; ok {
			candidates = append(candidates, pair[0], pair[1])
		}
	}
	if legendary {
		candidates = append(candidates, legendaryTraits[0], legendaryTraits[1])
	}
	if mythical {
		candidates = append(candidates, mythicalTraits[0], mythicalTraits[1])
	}

	seen := make(map[string]struct{}, len(candidates))
	traits := make([]string, 0, MaxTraits)
	for _, t := range candidates {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		traits = append(traits, t)
		if len(traits) == MaxTraits {
			break
		}
	}
	return traits
}
