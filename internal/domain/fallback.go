package domain

// DefaultFallbackKey is used when a checkout reference matches nothing.
const DefaultFallbackKey = "1"

var fallbackProducts = map[string]Product{
	"1": {
		ID:              "1",
		Name:            "AI Reels Bundle",
		Description:     "5000+ Trending Reels bundle",
		OriginalPrice:   499,
		DiscountedPrice: 399,
		ImageURL:        "/images/ai-reels-bundle.jpg",
		DriveLink:       "https://drive.google.com/drive/folders/example1",
	},
	"2": {
		ID:              "2",
		Name:            "500+ Excel Sheet Templates",
		Description:     "Complete collection of Excel sheet templates for business and personal use",
		OriginalPrice:   499,
		DiscountedPrice: 399,
		ImageURL:        "/images/excel-templates.jpg",
		DriveLink:       "https://drive.google.com/drive/folders/example2",
	},
	"3": {
		ID:              "3",
		Name:            "Instagram Growth Mastery Course",
		Description:     "Comprehensive course on growing your Instagram following and engagement",
		OriginalPrice:   499,
		DiscountedPrice: 399,
		ImageURL:        "/images/instagram-course.jpg",
		DriveLink:       "https://drive.google.com/drive/folders/example3",
	},
}

// FallbackProductByKey looks up the hardcoded catalog. The returned value is a
// copy; callers may modify it.
func FallbackProductByKey(key string) (Product, bool) {
	p, ok := fallbackProducts[key]
	return p, ok
}

// SeedProducts returns the catalog inserted by the seeder, without ids.
func SeedProducts() []Product {
	out := make([]Product, 0, len(fallbackProducts))
	for _, key := range []string{"1", "2", "3"} {
		p := fallbackProducts[key]
		p.ID = ""
		out = append(out, p)
	}
	return out
}
