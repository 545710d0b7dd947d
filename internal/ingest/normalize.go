package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"phoneflip/internal/specsource"
	"phoneflip/pkg/models"
)

var (
	priceJunk   = strings.NewReplacer(",", "", "Rs", "", "rs", "", "RS", "", "PKR", "", "pkr", "", "USD", "", "usd", "", "$", "", " ", "", " ", "")
	leadingNum  = regexp.MustCompile(`^\s*(\d+)`)
	anyNum      = regexp.MustCompile(`\d+`)
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ParsePrice strips thousands separators, currency symbols and codes,
// then parses the remainder as an integer. ok=false means the field
// should be stored as absent; a bad price never fails a record.
func ParsePrice(raw string) (int, bool) {
	cleaned := strings.TrimSpace(priceJunk.Replace(raw))
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// leadingInt extracts the integer prefix of strings like "5000 mAh",
// "256GB" or "6.7 inches" (whole part only).
func leadingInt(s string) (int, bool) {
	m := leadingNum.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// firstInt finds the first run of digits anywhere in the string.
func firstInt(s string) (int, bool) {
	m := anyNum.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func findYear(s string) (int, bool) {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, _ := strconv.Atoi(m)
	return n, true
}

func intPtr(n int) *int { return &n }

// FromRow maps one CSV row (header-keyed, already trimmed, empty values
// dropped) onto the canonical document. Only brand and model are
// mandatory; everything else degrades to absent.
func FromRow(row map[string]string) (*models.PhoneSpec, error) {
	brand := row["brand"]
	model := row["model"]
	if brand == "" {
		return nil, fmt.Errorf("missing brand")
	}
	if model == "" {
		return nil, fmt.Errorf("missing model")
	}

	spec := &models.PhoneSpec{
		Brand: brand,
		Model: model,

		OS:         row["os"],
		UI:         row["ui"],
		Dimensions: row["dimensions"],
		Weight:     row["weight"],
		SIM:        row["sim"],
		Colors:     row["colors"],

		Network2G: row["network_2g"],
		Network3G: row["network_3g"],
		Network4G: row["network_4g"],
		Network5G: row["network_5g"],

		CPU:     row["cpu"],
		Chipset: row["chipset"],
		GPU:     row["gpu"],

		DisplayTechnology: row["display_technology"],
		DisplaySize:       row["display_size"],
		DisplayResolution: row["display_resolution"],
		DisplayFeatures:   row["display_features"],

		Storage:  row["storage"],
		RAM:      row["ram"],
		CardSlot: row["card_slot"],

		MainCamera:     row["main_camera"],
		CameraFeatures: row["camera_features"],
		FrontCamera:    row["front_camera"],

		WLAN:      row["wlan"],
		Bluetooth: row["bluetooth"],
		GPS:       row["gps"],
		Radio:     row["radio"],
		USB:       row["usb"],
		NFC:       row["nfc"],
		Infrared:  row["infrared"],

		Sensors:       row["sensors"],
		Audio:         row["audio"],
		Browser:       row["browser"],
		Messaging:     row["messaging"],
		Games:         row["games"],
		Torch:         row["torch"],
		ExtraFeatures: row["extra_features"],

		BatteryCapacity: row["battery_capacity"],
		Charging:        row["charging"],

		CameraMP:        row["camera_mp"],
		Processor:       row["processor"],
		OperatingSystem: row["operating_system"],
	}

	if v, ok := ParsePrice(row["price_pkr"]); ok {
		spec.PricePKR = intPtr(v)
	}
	if v, ok := ParsePrice(row["price_usd"]); ok {
		spec.PriceUSD = intPtr(v)
	}

	// Legacy numeric columns, when present, win over derivation.
	if v, ok := leadingInt(row["battery_mah"]); ok {
		spec.BatteryMAH = intPtr(v)
	}
	if v, ok := leadingInt(row["storage_gb"]); ok {
		spec.StorageGB = intPtr(v)
	}
	if v, ok := leadingInt(row["ram_gb"]); ok {
		spec.RAMGB = intPtr(v)
	}
	if v, ok := findYear(row["release_year"]); ok {
		spec.ReleaseYear = intPtr(v)
	}

	fillLegacy(spec)
	return spec, nil
}

// FromDetail maps an external API detail payload onto the canonical
// document. Resolution order for every attribute is the known
// (category, key) pair first, then a category-blind key scan; gaps that
// survive resolution are filled by the heuristic synthesizer, which
// never overwrites resolved values.
func FromDetail(d *specsource.PhoneDetail) (*models.PhoneSpec, error) {
	if d == nil || strings.TrimSpace(d.Brand) == "" || strings.TrimSpace(d.PhoneName) == "" {
		return nil, fmt.Errorf("detail payload has no usable identity")
	}

	sheet := specsource.NewSpecSheet(d.Specifications)

	spec := &models.PhoneSpec{
		Brand: strings.TrimSpace(d.Brand),
		Model: strings.TrimSpace(d.PhoneName),

		OS:         firstNonEmpty(sheet.Lookup([2]string{"Platform", "OS"}), d.OS),
		Dimensions: firstNonEmpty(sheet.Lookup([2]string{"Body", "Dimensions"}), d.Dimension),
		Weight:     sheet.Lookup([2]string{"Body", "Weight"}),
		SIM:        sheet.Lookup([2]string{"Body", "SIM"}),
		Colors:     sheet.Lookup([2]string{"Misc", "Colors"}),

		Network2G: sheet.Lookup([2]string{"Network", "2G bands"}),
		Network3G: sheet.Lookup([2]string{"Network", "3G bands"}),
		Network4G: sheet.Lookup([2]string{"Network", "4G bands"}),
		Network5G: sheet.Lookup([2]string{"Network", "5G bands"}),

		CPU:     sheet.Lookup([2]string{"Platform", "CPU"}),
		Chipset: sheet.Lookup([2]string{"Platform", "Chipset"}),
		GPU:     sheet.Lookup([2]string{"Platform", "GPU"}),

		DisplayTechnology: sheet.Lookup([2]string{"Display", "Type"}, [2]string{"Display", "Technology"}),
		DisplaySize:       sheet.Lookup([2]string{"Display", "Size"}),
		DisplayResolution: sheet.Lookup([2]string{"Display", "Resolution"}),
		DisplayFeatures:   sheet.Lookup([2]string{"Display", "Protection"}),

		Storage: firstNonEmpty(sheet.Lookup([2]string{"Memory", "Internal"}), d.Storage),
		RAM:     sheet.Lookup([2]string{"Memory", "RAM"}),
		CardSlot: sheet.Lookup([2]string{"Memory", "Card slot"}),

		MainCamera: sheet.Lookup(
			[2]string{"Main Camera", "Triple"},
			[2]string{"Main Camera", "Quad"},
			[2]string{"Main Camera", "Dual"},
			[2]string{"Main Camera", "Single"},
		),
		CameraFeatures: sheet.Lookup([2]string{"Main Camera", "Features"}),
		FrontCamera: sheet.Lookup(
			[2]string{"Selfie camera", "Single"},
			[2]string{"Selfie camera", "Dual"},
		),

		WLAN:      sheet.Lookup([2]string{"Comms", "WLAN"}),
		Bluetooth: sheet.Lookup([2]string{"Comms", "Bluetooth"}),
		GPS:       sheet.Lookup([2]string{"Comms", "Positioning"}, [2]string{"Comms", "GPS"}),
		Radio:     sheet.Lookup([2]string{"Comms", "Radio"}),
		USB:       sheet.Lookup([2]string{"Comms", "USB"}),
		NFC:       sheet.Lookup([2]string{"Comms", "NFC"}),
		Infrared:  sheet.Lookup([2]string{"Comms", "Infrared port"}),

		Sensors: sheet.Lookup([2]string{"Features", "Sensors"}),

		BatteryCapacity: sheet.Lookup([2]string{"Battery", "Type"}, [2]string{"Battery", "Capacity"}),
		Charging:        sheet.Lookup([2]string{"Battery", "Charging"}),

		Source: models.SourcePhoneSpecsAPI,
	}

	if price := sheet.Lookup([2]string{"Misc", "Price"}); price != "" {
		if v, ok := ParsePrice(price); ok {
			if strings.Contains(price, "$") || strings.Contains(strings.ToUpper(price), "USD") {
				spec.PriceUSD = intPtr(v)
			} else {
				spec.PricePKR = intPtr(v)
			}
		}
	}

	if v, ok := findYear(d.ReleaseDate); ok {
		spec.ReleaseYear = intPtr(v)
	} else if v, ok := findYear(sheet.Lookup([2]string{"Launch", "Announced"})); ok {
		spec.ReleaseYear = intPtr(v)
	}

	synthesizeGaps(spec)
	fillLegacy(spec)
	return spec, nil
}

// synthesizeGaps fills attributes the resolver could not supply from the
// heuristic rule table. Resolver output is authoritative and is never
// replaced.
func synthesizeGaps(spec *models.PhoneSpec) {
	b := Synthesize(spec.Model, spec.Brand)

	if spec.BatteryCapacity == "" {
		spec.BatteryCapacity = b.Battery
	}
	if spec.DisplaySize == "" {
		spec.DisplaySize = b.ScreenSize
	}
	if spec.MainCamera == "" {
		spec.MainCamera = b.Camera
	}
	if spec.Chipset == "" {
		spec.Chipset = b.Processor
	}
	if spec.RAM == "" {
		spec.RAM = b.RAM
	}
	if spec.OS == "" {
		spec.OS = b.OS
	}
	if spec.PriceRangeMin == nil && b.PriceMin > 0 {
		spec.PriceRangeMin = intPtr(b.PriceMin)
		spec.PriceRangeMax = intPtr(b.PriceMax)
	}
	if spec.ReleaseYear == nil && b.ReleaseYear > 0 {
		spec.ReleaseYear = intPtr(b.ReleaseYear)
	}
}

// fillLegacy populates the backward-compatible duplicate fields from
// their canonical counterparts. Already-set values are kept.
func fillLegacy(spec *models.PhoneSpec) {
	if spec.Processor == "" {
		spec.Processor = firstNonEmpty(spec.Chipset, spec.CPU)
	}
	if spec.OperatingSystem == "" {
		spec.OperatingSystem = spec.OS
	}
	if spec.BatteryMAH == nil {
		// "Li-Ion 4441 mAh, non-removable": the capacity is the first
		// number, not a prefix.
		if v, ok := firstInt(spec.BatteryCapacity); ok {
			spec.BatteryMAH = intPtr(v)
		}
	}
	if spec.StorageGB == nil {
		if v, ok := leadingInt(spec.Storage); ok {
			spec.StorageGB = intPtr(v)
		}
	}
	if spec.RAMGB == nil {
		if v, ok := leadingInt(spec.RAM); ok {
			spec.RAMGB = intPtr(v)
		}
	}
	if spec.CameraMP == "" {
		if v, ok := leadingInt(spec.MainCamera); ok {
			spec.CameraMP = fmt.Sprintf("%dMP", v)
		}
	}
	if spec.PriceRangeMin == nil && spec.PricePKR != nil {
		spec.PriceRangeMin = intPtr(*spec.PricePKR)
		spec.PriceRangeMax = intPtr(*spec.PricePKR)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
