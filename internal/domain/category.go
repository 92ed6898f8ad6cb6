package domain

import "strings"

// YouTube video category IDs as returned in snippet.categoryId. The table
// covers the assignable categories that appear on regional trending charts.
var categoryNames = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"19": "Travel & Events",
	"20": "Gaming",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
}

var categoryIDsByName = func() map[string]string {
	m := make(map[string]string, len(categoryNames))
	for id, name := range categoryNames {
		m[normalizeCategoryName(name)] = id
	}
	// Common shorthand used in genre query params.
	m["autos"] = "2"
	m["pets"] = "15"
	m["travel"] = "19"
	m["blogs"] = "22"
	m["news"] = "25"
	m["style"] = "26"
	m["howto"] = "26"
	m["science"] = "28"
	m["tech"] = "28"
	m["technology"] = "28"
	m["film"] = "1"
	m["animation"] = "1"
	return m
}()

func normalizeCategoryName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "&", "and")
	return strings.Join(strings.Fields(name), " ")
}

// CategoryName resolves a category ID to its display name, falling back to
// the raw ID for categories outside the table.
func CategoryName(id string) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return "Category " + id
}

// ResolveCategoryID maps a genre query value to a YouTube category ID.
// Numeric values pass through unchanged; known names and shorthands are
// looked up case-insensitively. Returns false for unknown genres.
func ResolveCategoryID(genre string) (string, bool) {
	trimmed := strings.TrimSpace(genre)
	if trimmed == "" {
		return "", false
	}

	isNumeric := true
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			isNumeric = false
			break
		}
	}
	if isNumeric {
		return trimmed, true
	}

	if id, ok := categoryIDsByName[normalizeCategoryName(trimmed)]; ok {
		return id, true
	}
	return "", false
}
