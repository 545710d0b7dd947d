package ingest

import (
	"strings"
	"time"
	"unicode"
)

// SpecBundle is the synthesizer's best-effort attribute set for a phone
// we have no authoritative data for. It is explicitly lower-confidence
// than resolver output and is only ever used to fill gaps.
type SpecBundle struct {
	Battery     string
	ScreenSize  string
	Camera      string
	Processor   string
	RAM         string
	OS          string
	PriceMin    int // PKR
	PriceMax    int // PKR
	ReleaseYear int
}

// nameRule matches when every needle occurs in the normalized name.
// Rules are evaluated top to bottom; the first hit wins, so more
// specific variants ("15 pro max") must precede their base model ("15").
type nameRule struct {
	needles []string
	bundle  SpecBundle
}

var brandRules = map[string][]nameRule{
	"apple": {
		{[]string{"iphone", "15", "pro", "max"}, SpecBundle{
			Battery: "4441 mAh", ScreenSize: "6.7 inches", Camera: "48MP Triple",
			Processor: "Apple A17 Pro", RAM: "8GB", OS: "iOS 17",
			PriceMin: 520000, PriceMax: 580000,
		}},
		{[]string{"iphone", "15", "pro"}, SpecBundle{
			Battery: "3274 mAh", ScreenSize: "6.1 inches", Camera: "48MP Triple",
			Processor: "Apple A17 Pro", RAM: "8GB", OS: "iOS 17",
			PriceMin: 450000, PriceMax: 500000,
		}},
		{[]string{"iphone", "15", "plus"}, SpecBundle{
			Battery: "4383 mAh", ScreenSize: "6.7 inches", Camera: "48MP Dual",
			Processor: "Apple A16 Bionic", RAM: "6GB", OS: "iOS 17",
			PriceMin: 380000, PriceMax: 420000,
		}},
		{[]string{"iphone", "15"}, SpecBundle{
			Battery: "3349 mAh", ScreenSize: "6.1 inches", Camera: "48MP Dual",
			Processor: "Apple A16 Bionic", RAM: "6GB", OS: "iOS 17",
			PriceMin: 340000, PriceMax: 380000,
		}},
		{[]string{"iphone", "14"}, SpecBundle{
			Battery: "3279 mAh", ScreenSize: "6.1 inches", Camera: "12MP Dual",
			Processor: "Apple A15 Bionic", RAM: "6GB", OS: "iOS 16",
			PriceMin: 280000, PriceMax: 330000,
		}},
		{[]string{"iphone", "se"}, SpecBundle{
			Battery: "2018 mAh", ScreenSize: "4.7 inches", Camera: "12MP Single",
			Processor: "Apple A15 Bionic", RAM: "4GB", OS: "iOS 15",
			PriceMin: 130000, PriceMax: 160000,
		}},
	},
	"samsung": {
		{[]string{"s24", "ultra"}, SpecBundle{
			Battery: "5000 mAh", ScreenSize: "6.8 inches", Camera: "200MP Quad",
			Processor: "Snapdragon 8 Gen 3", RAM: "12GB", OS: "Android 14",
			PriceMin: 430000, PriceMax: 480000,
		}},
		{[]string{"s24", "plus"}, SpecBundle{
			Battery: "4900 mAh", ScreenSize: "6.7 inches", Camera: "50MP Triple",
			Processor: "Exynos 2400", RAM: "12GB", OS: "Android 14",
			PriceMin: 330000, PriceMax: 370000,
		}},
		{[]string{"s24"}, SpecBundle{
			Battery: "4000 mAh", ScreenSize: "6.2 inches", Camera: "50MP Triple",
			Processor: "Exynos 2400", RAM: "8GB", OS: "Android 14",
			PriceMin: 260000, PriceMax: 300000,
		}},
		{[]string{"fold"}, SpecBundle{
			Battery: "4400 mAh", ScreenSize: "7.6 inches", Camera: "50MP Triple",
			Processor: "Snapdragon 8 Gen 2", RAM: "12GB", OS: "Android 13",
			PriceMin: 500000, PriceMax: 600000,
		}},
		{[]string{"flip"}, SpecBundle{
			Battery: "3700 mAh", ScreenSize: "6.7 inches", Camera: "12MP Dual",
			Processor: "Snapdragon 8 Gen 2", RAM: "8GB", OS: "Android 13",
			PriceMin: 300000, PriceMax: 350000,
		}},
		{[]string{"a54"}, SpecBundle{
			Battery: "5000 mAh", ScreenSize: "6.4 inches", Camera: "50MP Triple",
			Processor: "Exynos 1380", RAM: "8GB", OS: "Android 13",
			PriceMin: 110000, PriceMax: 135000,
		}},
	},
	"google": {
		{[]string{"pixel", "8", "pro"}, SpecBundle{
			Battery: "5050 mAh", ScreenSize: "6.7 inches", Camera: "50MP Triple",
			Processor: "Google Tensor G3", RAM: "12GB", OS: "Android 14",
			PriceMin: 290000, PriceMax: 330000,
		}},
		{[]string{"pixel", "8"}, SpecBundle{
			Battery: "4575 mAh", ScreenSize: "6.2 inches", Camera: "50MP Dual",
			Processor: "Google Tensor G3", RAM: "8GB", OS: "Android 14",
			PriceMin: 200000, PriceMax: 240000,
		}},
		{[]string{"pixel", "a"}, SpecBundle{
			Battery: "4385 mAh", ScreenSize: "6.1 inches", Camera: "64MP Dual",
			Processor: "Google Tensor G2", RAM: "8GB", OS: "Android 13",
			PriceMin: 120000, PriceMax: 150000,
		}},
	},
	"oneplus": {
		{[]string{"12"}, SpecBundle{
			Battery: "5400 mAh", ScreenSize: "6.82 inches", Camera: "50MP Triple",
			Processor: "Snapdragon 8 Gen 3", RAM: "16GB", OS: "Android 14",
			PriceMin: 250000, PriceMax: 290000,
		}},
		{[]string{"nord"}, SpecBundle{
			Battery: "5000 mAh", ScreenSize: "6.7 inches", Camera: "50MP Triple",
			Processor: "Dimensity 7200", RAM: "8GB", OS: "Android 13",
			PriceMin: 90000, PriceMax: 120000,
		}},
	},
	"xiaomi": {
		{[]string{"14", "ultra"}, SpecBundle{
			Battery: "5300 mAh", ScreenSize: "6.73 inches", Camera: "50MP Quad",
			Processor: "Snapdragon 8 Gen 3", RAM: "16GB", OS: "Android 14",
			PriceMin: 320000, PriceMax: 370000,
		}},
		{[]string{"redmi", "note"}, SpecBundle{
			Battery: "5000 mAh", ScreenSize: "6.67 inches", Camera: "108MP Triple",
			Processor: "Snapdragon 685", RAM: "8GB", OS: "Android 13",
			PriceMin: 60000, PriceMax: 85000,
		}},
		{[]string{"poco"}, SpecBundle{
			Battery: "5000 mAh", ScreenSize: "6.67 inches", Camera: "64MP Triple",
			Processor: "Dimensity 8100", RAM: "8GB", OS: "Android 13",
			PriceMin: 70000, PriceMax: 100000,
		}},
	},
}

// Generic tier bundles, used when no brand rule matches.
var (
	flagshipBundle = SpecBundle{
		Battery: "5000 mAh", ScreenSize: "6.7 inches", Camera: "50MP Triple",
		Processor: "Snapdragon 8 Gen 2", RAM: "12GB", OS: "Android 14",
		PriceMin: 250000, PriceMax: 400000,
	}
	midrangeBundle = SpecBundle{
		Battery: "5000 mAh", ScreenSize: "6.5 inches", Camera: "50MP Dual",
		Processor: "Snapdragon 7 Gen 1", RAM: "8GB", OS: "Android 13",
		PriceMin: 80000, PriceMax: 150000,
	}
	budgetBundle = SpecBundle{
		Battery: "5000 mAh", ScreenSize: "6.5 inches", Camera: "13MP Dual",
		Processor: "Helio G85", RAM: "4GB", OS: "Android 13",
		PriceMin: 30000, PriceMax: 60000,
	}
)

var flagshipHints = []string{"pro", "ultra", "max", "plus", "fold", "flip"}

// Budget markers: multi-letter markers match as substrings; single
// letters only as a model-number token ("a54", "y17"), otherwise the
// letter "a" alone would classify nearly every phone as budget.
var budgetWords = []string{"lite", "mini", "se"}
var budgetLetters = []string{"a", "y", "c", "m"}

// yearHints is scanned in order; the first needle found in the name sets
// the plausible release year. Falls back to the current year.
var yearHints = []struct {
	needles []string
	year    int
}{
	{[]string{"2026"}, 2026},
	{[]string{"2025", "16", "s25"}, 2025},
	{[]string{"2024", "15", "s24"}, 2024},
	{[]string{"2023", "14", "s23"}, 2023},
	{[]string{"2022", "13", "s22"}, 2022},
}

// Synthesize fabricates a plausible spec bundle from brand and model
// name patterns: brand-specific rules first, then a generic
// flagship/budget/midrange tier. Output is gap-fill only.
func Synthesize(modelName, brand string) SpecBundle {
	name := strings.ToLower(strings.TrimSpace(modelName))

	bundle, matched := matchBrandRules(name, strings.ToLower(strings.TrimSpace(brand)))
	if !matched {
		switch {
		case isFlagship(name):
			bundle = flagshipBundle
		case isBudget(name):
			bundle = budgetBundle
		default:
			bundle = midrangeBundle
		}
	}

	if bundle.ReleaseYear == 0 {
		bundle.ReleaseYear = inferYear(name)
	}
	return bundle
}

func matchBrandRules(name, brand string) (SpecBundle, bool) {
	rules, ok := brandRules[brand]
	if !ok {
		return SpecBundle{}, false
	}
	for _, r := range rules {
		if containsAll(name, r.needles) {
			return r.bundle, true
		}
	}
	return SpecBundle{}, false
}

func containsAll(name string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(name, n) {
			return false
		}
	}
	return true
}

func isFlagship(name string) bool {
	for _, h := range flagshipHints {
		if strings.Contains(name, h) {
			return true
		}
	}
	return false
}

func isBudget(name string) bool {
	for _, w := range budgetWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	for _, token := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, l := range budgetLetters {
			if strings.HasPrefix(token, l) && len(token) > 1 && unicode.IsDigit(rune(token[1])) {
				return true
			}
		}
	}
	return false
}

func inferYear(name string) int {
	for _, h := range yearHints {
		for _, n := range h.needles {
			if strings.Contains(name, n) {
				return h.year
			}
		}
	}
	return time.Now().Year()
}
