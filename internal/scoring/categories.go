package scoring

// Category is one of the twelve fixed RMIB vocational-interest keys.
type Category string

const (
	CategoryOutdoor         Category = "outdoor"
	CategoryMechanical      Category = "mechanical"
	CategoryComputational   Category = "computational"
	CategoryScientific      Category = "scientific"
	CategoryPersonalContact Category = "personal_contact"
	CategoryAesthetic       Category = "aesthetic"
	CategoryLiterary        Category = "literary"
	CategoryMusical         Category = "musical"
	CategorySocialService   Category = "social_service"
	CategoryClerical        Category = "clerical"
	CategoryPractical       Category = "practical"
	CategoryMedical         Category = "medical"
)

// Categories lists all twelve keys in their canonical questionnaire order.
// The set is closed: ratings and achievement mappings may only use these keys.
var Categories = []Category{
	CategoryOutdoor,
	CategoryMechanical,
	CategoryComputational,
	CategoryScientific,
	CategoryPersonalContact,
	CategoryAesthetic,
	CategoryLiterary,
	CategoryMusical,
	CategorySocialService,
	CategoryClerical,
	CategoryPractical,
	CategoryMedical,
}

// CategoryCount is the number of entries a complete rating set must have.
const CategoryCount = 12

var categorySet = buildCategorySet()

func buildCategorySet() map[Category]struct{} {
	set := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}

// IsValidCategory reports whether key belongs to the fixed category set.
func IsValidCategory(key string) bool {
	_, ok := categorySet[Category(key)]
	return ok
}

// CategoryNames maps each key to its display name for reports.
var CategoryNames = map[Category]string{
	CategoryOutdoor:         "Outdoor",
	CategoryMechanical:      "Mechanical",
	CategoryComputational:   "Computational",
	CategoryScientific:      "Scientific",
	CategoryPersonalContact: "Personal Contact",
	CategoryAesthetic:       "Aesthetic",
	CategoryLiterary:        "Literary",
	CategoryMusical:         "Musical",
	CategorySocialService:   "Social Service",
	CategoryClerical:        "Clerical",
	CategoryPractical:       "Practical",
	CategoryMedical:         "Medical",
}
