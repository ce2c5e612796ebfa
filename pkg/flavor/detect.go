package flavor

import (
	"sort"
	"strings"
)

const (
	exactMatchWeight   = 1.0
	partialMatchWeight = 0.5
	minConfidence      = 0.2

	DefaultMaxSuggestions = 3
)

var ingredientFlavors = map[string][]string{
	"sugar":       {"sweet"},
	"honey":       {"sweet", "aromatic"},
	"maple syrup": {"sweet"},
	"banana":      {"sweet"},
	"apple":       {"sweet", "sour"},
	"orange":      {"sweet", "sour", "tangy"},
	"chocolate":   {"sweet", "bitter"},
	"cinnamon":    {"sweet", "aromatic"},
	"vanilla":     {"sweet", "aromatic"},

	"salt":       {"salty"},
	"soy sauce":  {"umami", "salty"},
	"fish sauce": {"salty", "umami"},
	"olives":     {"salty", "bitter"},
	"bacon":      {"smoky", "salty", "umami"},
	"cheese":     {"salty", "umami", "creamy"},
	"parmesan":   {"salty", "umami"},

	"lemon":      {"sour", "tangy"},
	"lime":       {"sour", "tangy"},
	"vinegar":    {"sour", "tangy"},
	"yogurt":     {"sour", "creamy"},
	"buttermilk": {"sour", "creamy"},
	"sour cream": {"sour", "creamy"},
	"tomato":     {"umami", "sour"},

	"coffee":         {"bitter", "aromatic"},
	"dark chocolate": {"bitter", "sweet"},
	"cocoa":          {"bitter"},
	"kale":           {"bitter"},
	"arugula":        {"bitter"},
	"grapefruit":     {"bitter", "sour"},

	"mushroom": {"umami"},
	"miso":     {"umami", "salty"},
	"beef":     {"umami"},
	"pork":     {"umami"},
	"chicken":  {"umami"},
	"fish":     {"umami"},
	"seaweed":  {"umami"},

	"chili":       {"spicy"},
	"pepper":      {"spicy"},
	"hot sauce":   {"spicy", "tangy"},
	"jalapeno":    {"spicy"},
	"cayenne":     {"spicy"},
	"wasabi":      {"spicy"},
	"horseradish": {"spicy"},
	"ginger":      {"spicy", "aromatic"},

	"basil":    {"aromatic"},
	"rosemary": {"aromatic"},
	"thyme":    {"aromatic"},
	"mint":     {"aromatic", "cooling"},
	"garlic":   {"aromatic", "pungent"},
	"onion":    {"aromatic", "pungent"},
	"truffle":  {"aromatic", "umami"},

	"milk":         {"creamy"},
	"cream":        {"creamy"},
	"coconut milk": {"creamy", "sweet"},
	"butter":       {"creamy", "rich"},
	"avocado":      {"creamy"},
	"cream cheese": {"creamy", "tangy"},

	"smoked paprika": {"smoky"},
	"smoked salt":    {"smoky", "salty"},
	"smoked cheese":  {"smoky", "umami", "creamy"},
	"chipotle":       {"smoky", "spicy"},

	"pickles":          {"tangy", "sour"},
	"sauerkraut":       {"tangy", "sour"},
	"kimchi":           {"tangy", "spicy", "umami"},
	"mustard":          {"tangy", "pungent"},
	"tamarind":         {"tangy", "sour", "sweet"},
	"balsamic vinegar": {"tangy", "sweet"},
}

// Detection is the flavor profile inferred from an ingredient list.
type Detection struct {
	// Flavors holds every flavor at or above the confidence floor, strongest first.
	Flavors []string
	Scores  map[string]float64
	// Confidence is the mean score of Flavors.
	Confidence float64
}

// DetectFlavors scores flavors by looking ingredients up in the flavor table.
// An exact name counts fully. Otherwise every table entry that contains the
// ingredient, or is contained by it, counts half.
func DetectFlavors(ingredients []string) Detection {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if n := strings.ToLower(strings.TrimSpace(ing)); n != "" {
			names = append(names, n)
		}
	}

	counts := make(map[string]float64)
	for _, name := range names {
		if flavors, ok := ingredientFlavors[name]; ok {
			for _, f := range flavors {
				counts[f] += exactMatchWeight
			}
			continue
		}
		for mapped, flavors := range ingredientFlavors {
			if strings.Contains(name, mapped) || strings.Contains(mapped, name) {
				for _, f := range flavors {
					counts[f] += partialMatchWeight
				}
			}
		}
	}

	if len(counts) == 0 {
		return Detection{Flavors: []string{}, Scores: map[string]float64{}}
	}

	scores := make(map[string]float64, len(counts))
	for f, c := range counts {
		scores[f] = c / float64(len(names))
	}

	detected := make([]string, 0, len(scores))
	for f, s := range scores {
		if s >= minConfidence {
			detected = append(detected, f)
		}
	}
	sort.Slice(detected, func(i, j int) bool {
		if scores[detected[i]] != scores[detected[j]] {
			return scores[detected[i]] > scores[detected[j]]
		}
		return detected[i] < detected[j]
	})

	var sum float64
	for _, f := range detected {
		sum += scores[f]
	}
	confidence := 0.0
	if len(detected) > 0 {
		confidence = sum / float64(len(detected))
	}

	return Detection{Flavors: detected, Scores: scores, Confidence: confidence}
}

// SuggestTags returns at most max detected flavors, strongest first.
func SuggestTags(ingredients []string, max int) []string {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}
	flavors := DetectFlavors(ingredients).Flavors
	if len(flavors) > max {
		flavors = flavors[:max]
	}
	return flavors
}
