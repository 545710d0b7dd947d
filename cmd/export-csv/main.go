package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"phoneflip/internal/catalog"
	"phoneflip/pkg/database"
	"phoneflip/pkg/models"
	"phoneflip/pkg/utils"
)

// Column order matches the bulk-import schema, so an exported file can
// be re-imported into another environment.
var columns = []string{
	"brand", "model", "os", "ui", "dimensions", "weight", "sim", "colors",
	"network_2g", "network_3g", "network_4g", "network_5g",
	"cpu", "chipset", "gpu",
	"display_technology", "display_size", "display_resolution", "display_features",
	"storage", "ram", "card_slot",
	"main_camera", "camera_features", "front_camera",
	"wlan", "bluetooth", "gps", "radio", "usb", "nfc", "infrared",
	"sensors", "audio", "browser", "messaging", "games", "torch", "extra_features",
	"battery_capacity", "charging", "price_pkr", "price_usd",
	"camera_mp", "battery_mah", "storage_gb", "ram_gb",
	"processor", "operating_system", "release_year",
}

func main() {
	var (
		out = flag.String("out", "data/phone_specs.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := utils.LoadConfig()
	client := database.MustOpen(database.Config{URI: cfg.MongoURI, Name: cfg.MongoDB})
	defer client.Disconnect(context.Background())

	repo := catalog.NewMongoRepo(client.Database(cfg.MongoDB))

	if err := exportSpecs(ctx, repo, *out); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("exported phone specs to %s", *out)
}

func exportSpecs(ctx context.Context, repo catalog.Repository, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}

	const page = 100
	for offset := 0; ; offset += page {
		batch, err := repo.List(ctx, catalog.ListQuery{Limit: page, Offset: offset})
		if err != nil {
			return err
		}
		for i := range batch {
			if err := w.Write(toRow(&batch[i])); err != nil {
				return err
			}
		}
		if len(batch) < page {
			break
		}
	}

	w.Flush()
	return w.Error()
}

func toRow(s *models.PhoneSpec) []string {
	return []string{
		s.Brand, s.Model, s.OS, s.UI, s.Dimensions, s.Weight, s.SIM, s.Colors,
		s.Network2G, s.Network3G, s.Network4G, s.Network5G,
		s.CPU, s.Chipset, s.GPU,
		s.DisplayTechnology, s.DisplaySize, s.DisplayResolution, s.DisplayFeatures,
		s.Storage, s.RAM, s.CardSlot,
		s.MainCamera, s.CameraFeatures, s.FrontCamera,
		s.WLAN, s.Bluetooth, s.GPS, s.Radio, s.USB, s.NFC, s.Infrared,
		s.Sensors, s.Audio, s.Browser, s.Messaging, s.Games, s.Torch, s.ExtraFeatures,
		s.BatteryCapacity, s.Charging, intField(s.PricePKR), intField(s.PriceUSD),
		s.CameraMP, intField(s.BatteryMAH), intField(s.StorageGB), intField(s.RAMGB),
		s.Processor, s.OperatingSystem, intField(s.ReleaseYear),
	}
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
