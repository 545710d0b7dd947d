package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SourcePhoneSpecsAPI tags records imported from the external
// phone-specs API. CSV / manual records carry no source tag.
const SourcePhoneSpecsAPI = "phone_specs_api"

// PhoneSpec is the canonical, normalized form of a phone specification.
//
// Every ingestion source (admin CSV upload, external specs API) is mapped
// into this structure first, then written to the phone_specs collection.
// (brand, model) is the identity: case-sensitive, unique across the
// catalog. All other attributes are optional; empty strings are stored as
// absent fields via omitempty, and numeric fields are pointers so that
// "absent" and "zero" stay distinguishable.
type PhoneSpec struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Brand string             `json:"brand" bson:"brand"`
	Model string             `json:"model" bson:"model"`

	// Build
	OS         string `json:"os,omitempty" bson:"os,omitempty"`
	UI         string `json:"ui,omitempty" bson:"ui,omitempty"`
	Dimensions string `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	Weight     string `json:"weight,omitempty" bson:"weight,omitempty"`
	SIM        string `json:"sim,omitempty" bson:"sim,omitempty"`
	Colors     string `json:"colors,omitempty" bson:"colors,omitempty"`

	// Network bands
	Network2G string `json:"network_2g,omitempty" bson:"network_2g,omitempty"`
	Network3G string `json:"network_3g,omitempty" bson:"network_3g,omitempty"`
	Network4G string `json:"network_4g,omitempty" bson:"network_4g,omitempty"`
	Network5G string `json:"network_5g,omitempty" bson:"network_5g,omitempty"`

	// Processor
	CPU     string `json:"cpu,omitempty" bson:"cpu,omitempty"`
	Chipset string `json:"chipset,omitempty" bson:"chipset,omitempty"`
	GPU     string `json:"gpu,omitempty" bson:"gpu,omitempty"`

	// Display
	DisplayTechnology string `json:"display_technology,omitempty" bson:"display_technology,omitempty"`
	DisplaySize       string `json:"display_size,omitempty" bson:"display_size,omitempty"`
	DisplayResolution string `json:"display_resolution,omitempty" bson:"display_resolution,omitempty"`
	DisplayFeatures   string `json:"display_features,omitempty" bson:"display_features,omitempty"`

	// Memory
	Storage  string `json:"storage,omitempty" bson:"storage,omitempty"`
	RAM      string `json:"ram,omitempty" bson:"ram,omitempty"`
	CardSlot string `json:"card_slot,omitempty" bson:"card_slot,omitempty"`

	// Camera
	MainCamera     string `json:"main_camera,omitempty" bson:"main_camera,omitempty"`
	CameraFeatures string `json:"camera_features,omitempty" bson:"camera_features,omitempty"`
	FrontCamera    string `json:"front_camera,omitempty" bson:"front_camera,omitempty"`

	// Connectivity
	WLAN      string `json:"wlan,omitempty" bson:"wlan,omitempty"`
	Bluetooth string `json:"bluetooth,omitempty" bson:"bluetooth,omitempty"`
	GPS       string `json:"gps,omitempty" bson:"gps,omitempty"`
	Radio     string `json:"radio,omitempty" bson:"radio,omitempty"`
	USB       string `json:"usb,omitempty" bson:"usb,omitempty"`
	NFC       string `json:"nfc,omitempty" bson:"nfc,omitempty"`
	Infrared  string `json:"infrared,omitempty" bson:"infrared,omitempty"`

	// Features
	Sensors       string `json:"sensors,omitempty" bson:"sensors,omitempty"`
	Audio         string `json:"audio,omitempty" bson:"audio,omitempty"`
	Browser       string `json:"browser,omitempty" bson:"browser,omitempty"`
	Messaging     string `json:"messaging,omitempty" bson:"messaging,omitempty"`
	Games         string `json:"games,omitempty" bson:"games,omitempty"`
	Torch         string `json:"torch,omitempty" bson:"torch,omitempty"`
	ExtraFeatures string `json:"extra_features,omitempty" bson:"extra_features,omitempty"`

	// Battery
	BatteryCapacity string `json:"battery_capacity,omitempty" bson:"battery_capacity,omitempty"`
	Charging        string `json:"charging,omitempty" bson:"charging,omitempty"`

	// Pricing
	PricePKR *int `json:"price_pkr,omitempty" bson:"price_pkr,omitempty"`
	PriceUSD *int `json:"price_usd,omitempty" bson:"price_usd,omitempty"`

	// Legacy fields kept for backward-compatible consumers (compare view,
	// old mobile clients). Always derived from the canonical attributes
	// above by the normalizer.
	CameraMP        string `json:"camera_mp,omitempty" bson:"camera_mp,omitempty"`
	BatteryMAH      *int   `json:"battery_mah,omitempty" bson:"battery_mah,omitempty"`
	StorageGB       *int   `json:"storage_gb,omitempty" bson:"storage_gb,omitempty"`
	RAMGB           *int   `json:"ram_gb,omitempty" bson:"ram_gb,omitempty"`
	Processor       string `json:"processor,omitempty" bson:"processor,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty" bson:"operating_system,omitempty"`
	PriceRangeMin   *int   `json:"price_range_min,omitempty" bson:"price_range_min,omitempty"`
	PriceRangeMax   *int   `json:"price_range_max,omitempty" bson:"price_range_max,omitempty"`
	ReleaseYear     *int   `json:"release_year,omitempty" bson:"release_year,omitempty"`

	// Provenance
	Source    string    `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Identity returns the "brand model" string used in import reports.
func (p *PhoneSpec) Identity() string {
	return p.Brand + " " + p.Model
}

// ComparePhone is the projection served by /phone-specs/compare.
type ComparePhone struct {
	ID              string   `json:"_id"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	DisplayName     string   `json:"displayName"`
	Price           int      `json:"price"`
	Photos          []string `json:"photos"`
	Storage         string   `json:"storage"`
	RAM             string   `json:"ram"`
	Battery         string   `json:"battery"`
	Camera          string   `json:"camera"`
	ScreenSize      string   `json:"screen_size"`
	Processor       string   `json:"processor"`
	OperatingSystem string   `json:"operating_system"`
	Network         string   `json:"network"`
	PriceRange      string   `json:"price_range"`
}

// TrimBrandPrefix removes a duplicated brand name from the front of a
// model string ("Samsung Galaxy S24" with brand "Samsung" -> "Galaxy S24").
func TrimBrandPrefix(brand, model string) string {
	if brand != "" && strings.HasPrefix(model, brand) {
		return strings.TrimSpace(model[len(brand):])
	}
	return model
}
