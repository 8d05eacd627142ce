package models

// Category classifies a post. Stored as a short string rather than an
// integer enum so legacy rows remain readable.
type Category string

const (
	CategoryTechnique  Category = "Technique"
	CategoryEquipment  Category = "Equipment"
	CategoryTournament Category = "Tournament"
	CategoryTraining   Category = "Training"
	CategoryOther      Category = "Other"
)

// categoryAliases maps legacy Chinese labels, kept for rows imported from
// the old forum, onto the canonical category set.
var categoryAliases = map[string]Category{
	"Technique":  CategoryTechnique,
	"Equipment":  CategoryEquipment,
	"Tournament": CategoryTournament,
	"Training":   CategoryTraining,
	"Other":      CategoryOther,
	"技术":         CategoryTechnique,
	"装备":         CategoryEquipment,
	"比赛":         CategoryTournament,
	"训练":         CategoryTraining,
	"其他":         CategoryOther,
}

// NormalizeCategory maps a raw category label to the canonical set.
// Unknown or empty labels fall back to Other.
func NormalizeCategory(raw string) Category {
	if c, ok := categoryAliases[raw]; ok {
		return c
	}
	return CategoryOther
}

// Categories returns the canonical category set in display order.
func Categories() []Category {
	return []Category{
		CategoryTechnique,
		CategoryEquipment,
		CategoryTournament,
		CategoryTraining,
		CategoryOther,
	}
}
