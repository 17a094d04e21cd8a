package taxonomy

// Alias maps are keyed by slugified input. Unknown values are not errors:
// normalization returns the slugified input unchanged so the analysis engine
// can treat any category opaquely, canonical or not.

var mediumAliases = map[string]string{
	"oil-on-canvas":    "oil",
	"oil-paint":        "oil",
	"oil-painting":     "oil",
	"oils":             "oil",
	"acrylics":         "acrylic",
	"acrylic-on-panel": "acrylic",
	"water-color":      "watercolor",
	"watercolour":      "watercolor",
	"aquarelle":        "watercolor",
	"gouache":          "watercolor",
	"digital-art":      "digital",
	"digital-painting": "digital",
	"generative":       "digital",
	"photo":            "photography",
	"photograph":       "photography",
	"film-photography": "photography",
	"mixed":            "mixed-media",
	"mixed-medium":     "mixed-media",
	"collage":          "mixed-media",
	"assemblage":       "mixed-media",
	"pen-and-ink":      "ink",
	"ink-drawing":      "ink",
	"india-ink":        "ink",
	"charcoal-drawing": "charcoal",
	"graphite":         "charcoal",
	"pencil":           "charcoal",
	"soft-pastel":      "pastel",
	"oil-pastel":       "pastel",
	"print":            "printmaking",
	"screen-print":     "printmaking",
	"silkscreen":       "printmaking",
	"linocut":          "printmaking",
	"etching":          "printmaking",
	"lithograph":       "printmaking",
	"ceramic":          "ceramics",
	"pottery":          "ceramics",
	"clay":             "ceramics",
	"bronze":           "sculpture",
	"marble":           "sculpture",
	"wood-carving":     "sculpture",
	"statue":           "sculpture",
}

var styleAliases = map[string]string{
	"abstract-art":           "abstract",
	"abstraction":            "abstract",
	"non-objective":          "abstract",
	"abstract-expressionism": "expressionism",
	"expressionist":          "expressionism",
	"impressionist":          "impressionism",
	"plein-air":              "impressionism",
	"photorealism":           "realism",
	"hyperrealism":           "realism",
	"realistic":              "realism",
	"naturalism":             "realism",
	"minimalist":             "minimalism",
	"minimal":                "minimalism",
	"pop":                    "pop-art",
	"popart":                 "pop-art",
	"street-art":             "pop-art",
	"surreal":                "surrealism",
	"surrealist":             "surrealism",
	"dreamlike":              "surrealism",
	"modern":                 "contemporary",
	"contemporary-art":       "contemporary",
	"figure":                 "figurative",
	"portrait":               "figurative",
	"portraiture":            "figurative",
	"nude":                   "figurative",
	"scenery":                "landscape",
	"seascape":               "landscape",
	"cityscape":              "landscape",
}

var colorAliases = map[string]string{
	"navy":       "blue",
	"teal":       "blue",
	"turquoise":  "blue",
	"cobalt":     "blue",
	"azure":      "blue",
	"crimson":    "red",
	"scarlet":    "red",
	"burgundy":   "red",
	"maroon":     "red",
	"olive":      "green",
	"emerald":    "green",
	"sage":       "green",
	"mint":       "green",
	"gold":       "yellow",
	"amber":      "yellow",
	"mustard":    "yellow",
	"coral":      "orange",
	"peach":      "orange",
	"rust":       "orange",
	"violet":     "purple",
	"lavender":   "purple",
	"lilac":      "purple",
	"plum":       "purple",
	"magenta":    "pink",
	"rose":       "pink",
	"fuchsia":    "pink",
	"tan":        "beige",
	"cream":      "beige",
	"sand":       "beige",
	"neutral":    "beige",
	"ivory":      "white",
	"grey":       "gray",
	"silver":     "gray",
	"slate":      "gray",
	"earth":      "brown",
	"sepia":      "brown",
	"umber":      "brown",
	"terracotta": "brown",
	"monochrome": "black",
	"ebony":      "black",
}

// NormalizeMedium resolves a raw medium value to its canonical slug.
func NormalizeMedium(s string) string {
	return normalize(s, mediumSet, mediumAliases)
}

// NormalizeStyle resolves a raw style value to its canonical slug.
func NormalizeStyle(s string) string {
	return normalize(s, styleSet, styleAliases)
}

// NormalizeColor resolves a raw color value to its canonical slug.
func NormalizeColor(s string) string {
	return normalize(s, colorSet, colorAliases)
}

// NormalizeColors resolves a color set, dropping empties and duplicates
// while keeping first-seen order.
func NormalizeColors(colors []string) []string {
	if len(colors) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(colors))
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		normalized := NormalizeColor(c)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

func normalize(s string, canonical map[string]bool, aliases map[string]string) string {
	slug := Slugify(s)
	if slug == "" {
		return ""
	}
	if canonical[slug] {
		return slug
	}
	if target, ok := aliases[slug]; ok {
		return target
	}
	return slug
}
