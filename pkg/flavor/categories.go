package flavor

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Categories = []Category{
	{ID: "sweet", Name: "Sweet", Description: "Sugar, honey, fruits"},
	{ID: "salty", Name: "Salty", Description: "Sea salt, soy sauce"},
	{ID: "sour", Name: "Sour", Description: "Citrus, vinegar, yogurt"},
	{ID: "bitter", Name: "Bitter", Description: "Coffee, dark chocolate, leafy greens"},
	{ID: "umami", Name: "Umami", Description: "Mushrooms, aged cheese, soy"},
	{ID: "spicy", Name: "Spicy", Description: "Chili peppers, ginger, horseradish"},
	{ID: "aromatic", Name: "Aromatic", Description: "Herbs, spices, vanilla"},
	{ID: "creamy", Name: "Creamy", Description: "Milk, coconut, avocado"},
	{ID: "smoky", Name: "Smoky", Description: "Smoked paprika, grilled foods"},
	{ID: "tangy", Name: "Tangy", Description: "Pickled foods, fermented foods"},
}

func IsCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// defaultPairings are classic partners offered before a user has any history.
var defaultPairings = map[string][]string{
	"sweet":    {"sour", "salty", "bitter", "creamy"},
	"salty":    {"sweet", "sour", "umami", "smoky"},
	"sour":     {"sweet", "salty", "spicy", "aromatic"},
	"bitter":   {"sweet", "salty", "creamy", "aromatic"},
	"umami":    {"salty", "sour", "aromatic", "spicy"},
	"spicy":    {"sweet", "sour", "creamy", "tangy"},
	"aromatic": {"salty", "sweet", "bitter", "umami"},
	"creamy":   {"sweet", "sour", "spicy", "tangy"},
	"smoky":    {"sweet", "spicy", "salty", "tangy"},
	"tangy":    {"sweet", "spicy", "creamy", "salty"},
}
