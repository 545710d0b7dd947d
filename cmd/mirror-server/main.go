// mirror-server is a local stand-in for the external phone-specs API so
// the sync path can be developed and demoed offline. It serves a small
// fixed dataset in the upstream wire format.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type specEntry struct {
	Key string   `json:"key"`
	Val []string `json:"val"`
}

type specGroup struct {
	Title string      `json:"title"`
	Specs []specEntry `json:"specs"`
}

type phoneDetail struct {
	Brand          string      `json:"brand"`
	PhoneName      string      `json:"phone_name"`
	ReleaseDate    string      `json:"release_date"`
	Dimension      string      `json:"dimension"`
	OS             string      `json:"os"`
	Storage        string      `json:"storage"`
	Specifications []specGroup `json:"specifications"`
}

type fixture struct {
	slug   string
	detail phoneDetail
}

var fixtures = map[string][]fixture{
	"apple": {
		{
			slug: "apple_iphone_15_pro_max",
			detail: phoneDetail{
				Brand:       "Apple",
				PhoneName:   "iPhone 15 Pro Max",
				ReleaseDate: "Released 2023, September 22",
				OS:          "iOS 17",
				Storage:     "256GB 8GB RAM",
				Specifications: []specGroup{
					{Title: "Platform", Specs: []specEntry{
						{Key: "OS", Val: []string{"iOS 17, upgradable to iOS 17.4"}},
						{Key: "Chipset", Val: []string{"Apple A17 Pro (3 nm)"}},
						{Key: "CPU", Val: []string{"Hexa-core"}},
					}},
					{Title: "Display", Specs: []specEntry{
						{Key: "Type", Val: []string{"LTPO Super Retina XDR OLED, 120Hz"}},
						{Key: "Size", Val: []string{"6.7 inches"}},
						{Key: "Resolution", Val: []string{"1290 x 2796 pixels"}},
					}},
					{Title: "Memory", Specs: []specEntry{
						{Key: "Internal", Val: []string{"256GB 8GB RAM", "512GB 8GB RAM"}},
						{Key: "Card slot", Val: []string{"No"}},
					}},
					{Title: "Main Camera", Specs: []specEntry{
						{Key: "Triple", Val: []string{"48 MP, f/1.8, 24mm (wide)"}},
					}},
					{Title: "Battery", Specs: []specEntry{
						{Key: "Type", Val: []string{"Li-Ion 4441 mAh, non-removable"}},
						{Key: "Charging", Val: []string{"Wired, PD2.0, 50% in 30 min"}},
					}},
					{Title: "Misc", Specs: []specEntry{
						{Key: "Price", Val: []string{"$ 1,199.00"}},
					}},
				},
			},
		},
		{
			slug: "apple_iphone_15",
			detail: phoneDetail{
				Brand:       "Apple",
				PhoneName:   "iPhone 15",
				ReleaseDate: "Released 2023, September 22",
				OS:          "iOS 17",
				Storage:     "128GB 6GB RAM",
				Specifications: []specGroup{
					{Title: "Platform", Specs: []specEntry{
						{Key: "Chipset", Val: []string{"Apple A16 Bionic (4 nm)"}},
					}},
					{Title: "Battery & Charging", Specs: []specEntry{
						{Key: "Type", Val: []string{"Li-Ion 3349 mAh, non-removable"}},
					}},
				},
			},
		},
	},
	"samsung": {
		{
			slug: "samsung_galaxy_s24_ultra",
			detail: phoneDetail{
				Brand:       "Samsung",
				PhoneName:   "Samsung Galaxy S24 Ultra",
				ReleaseDate: "Released 2024, January 24",
				OS:          "Android 14, One UI 6.1",
				Storage:     "256GB 12GB RAM",
				Specifications: []specGroup{
					{Title: "Platform", Specs: []specEntry{
						{Key: "Chipset", Val: []string{"Snapdragon 8 Gen 3 (4 nm)"}},
					}},
					{Title: "Battery", Specs: []specEntry{
						{Key: "Type", Val: []string{"Li-Ion 5000 mAh, non-removable"}},
					}},
					{Title: "Misc", Specs: []specEntry{
						{Key: "Price", Val: []string{"Rs 434,999"}},
					}},
				},
			},
		},
	},
}

func main() {
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/brands", func(c *gin.Context) {
		brands := make([]gin.H, 0, len(fixtures))
		for _, slug := range []string{"apple", "samsung"} {
			brands = append(brands, gin.H{
				"brand_name": slug,
				"brand_slug": slug,
				"detail":     baseURL(c) + "/brands/" + slug,
			})
		}
		c.JSON(http.StatusOK, gin.H{"status": true, "data": brands})
	})

	router.GET("/brands/:slug", func(c *gin.Context) {
		phones, ok := fixtures[c.Param("slug")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"status": false})
			return
		}
		list := make([]gin.H, 0, len(phones))
		for _, p := range phones {
			list = append(list, gin.H{
				"phone_name": p.detail.PhoneName,
				"slug":       p.slug,
				"detail":     baseURL(c) + "/phones/" + p.slug,
			})
		}
		c.JSON(http.StatusOK, gin.H{"status": true, "data": gin.H{
			"phones":       list,
			"current_page": 1,
			"last_page":    1,
		}})
	})

	router.GET("/phones/:slug", func(c *gin.Context) {
		for _, phones := range fixtures {
			for _, p := range phones {
				if p.slug == c.Param("slug") {
					c.JSON(http.StatusOK, gin.H{"status": true, "data": p.detail})
					return
				}
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"status": false})
	})

	log.Printf("mirror-server listening on %s", *addr)
	log.Fatal(router.Run(*addr))
}

func baseURL(c *gin.Context) string {
	return "http://" + c.Request.Host
}
