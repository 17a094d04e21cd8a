package taxonomy

// Term is one canonical facet value.
type Term struct {
	Name string
	Slug string
}

// DefaultMediums is the built-in medium vocabulary. Artists can use values
// outside it; these just anchor normalization and seeding.
var DefaultMediums = []Term{
	{Name: "Oil", Slug: "oil"},
	{Name: "Acrylic", Slug: "acrylic"},
	{Name: "Watercolor", Slug: "watercolor"},
	{Name: "Digital", Slug: "digital"},
	{Name: "Photography", Slug: "photography"},
	{Name: "Sculpture", Slug: "sculpture"},
	{Name: "Mixed Media", Slug: "mixed-media"},
	{Name: "Ink", Slug: "ink"},
	{Name: "Charcoal", Slug: "charcoal"},
	{Name: "Pastel", Slug: "pastel"},
	{Name: "Printmaking", Slug: "printmaking"},
	{Name: "Ceramics", Slug: "ceramics"},
}

// DefaultStyles is the built-in style vocabulary.
var DefaultStyles = []Term{
	{Name: "Abstract", Slug: "abstract"},
	{Name: "Contemporary", Slug: "contemporary"},
	{Name: "Impressionism", Slug: "impressionism"},
	{Name: "Realism", Slug: "realism"},
	{Name: "Minimalism", Slug: "minimalism"},
	{Name: "Pop Art", Slug: "pop-art"},
	{Name: "Surrealism", Slug: "surrealism"},
	{Name: "Expressionism", Slug: "expressionism"},
	{Name: "Figurative", Slug: "figurative"},
	{Name: "Landscape", Slug: "landscape"},
}

// DefaultColors is the built-in dominant-color vocabulary.
var DefaultColors = []Term{
	{Name: "Blue", Slug: "blue"},
	{Name: "Red", Slug: "red"},
	{Name: "Green", Slug: "green"},
	{Name: "Yellow", Slug: "yellow"},
	{Name: "Orange", Slug: "orange"},
	{Name: "Purple", Slug: "purple"},
	{Name: "Pink", Slug: "pink"},
	{Name: "Brown", Slug: "brown"},
	{Name: "Black", Slug: "black"},
	{Name: "White", Slug: "white"},
	{Name: "Gray", Slug: "gray"},
	{Name: "Beige", Slug: "beige"},
}

func slugSet(terms []Term) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[t.Slug] = true
	}
	return set
}

var (
	mediumSet = slugSet(DefaultMediums)
	styleSet  = slugSet(DefaultStyles)
	colorSet  = slugSet(DefaultColors)
)
