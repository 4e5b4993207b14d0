package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

const (
	demoVendorUsername = "techparts_store"
	demoVendorPassword = "vendor123"
)

type productFixture struct {
	name        string
	description string
	price       float64
}

var productFixtures = map[string][]productFixture{
	"Processors (CPU)": {
		{"Intel Core i9-14900K", "24-core (8P+16E) flagship processor, 6.0GHz boost clock, unlocked multiplier, 36MB cache", 35999},
		{"AMD Ryzen 9 7950X", "16-core/32-thread Zen 4 processor, 5.7GHz boost, 80MB cache, AM5 socket", 32999},
		{"AMD Ryzen 7 7800X3D", "8-core with 3D V-Cache technology, ultimate gaming CPU, 104MB total cache", 28999},
		{"Intel Core i5-14600K", "14-core (6P+8E) processor, 5.3GHz boost, best value for gaming", 15999},
	},
	"Graphics Cards (GPU)": {
		{"NVIDIA RTX 4090", "24GB GDDR6X, 16384 CUDA cores, ultimate 4K gaming at 120+ FPS", 95999},
		{"AMD RX 7900 XTX", "24GB GDDR6, RDNA 3 architecture, excellent 4K performance", 54999},
		{"NVIDIA RTX 4070", "12GB GDDR6X, excellent 1440p performance, DLSS 3 support", 35999},
		{"AMD RX 7600", "8GB GDDR6, budget-friendly 1080p gaming excellence", 17999},
	},
	"Motherboards": {
		{"ASUS ROG MAXIMUS Z790 HERO", "Premium Intel Z790 chipset, WiFi 6E, Thunderbolt 4, DDR5 support", 28999},
		{"MSI MAG X670E Tomahawk WiFi", "AMD AM5 socket, PCIe 5.0, WiFi 6E, robust VRM design", 18999},
		{"ASUS TUF Gaming B650-PLUS WiFi", "Value AMD AM5 board, PCIe 4.0, military-grade components", 12999},
	},
	"Memory (RAM)": {
		{"G.Skill Trident Z5 RGB 32GB DDR5", "6000MHz CL30 (2x16GB), excellent for gaming and productivity", 9999},
		{"Kingston FURY Beast 32GB DDR5", "5600MHz CL36 (2x16GB), reliable performance, AMD EXPO certified", 7999},
		{"Corsair Vengeance 32GB DDR4", "3600MHz CL18 (2x16GB), best DDR4 value for Intel/AMD", 5999},
	},
	"Storage (SSD/HDD)": {
		{"Samsung 990 PRO 2TB", "PCIe 4.0 NVMe M.2, 7450MB/s read, 6900MB/s write, TLC NAND", 10999},
		{"WD Black SN850X 1TB", "Gaming SSD with heatsink, 7300MB/s, optimized for DirectStorage", 6999},
		{"WD Blue SN570 1TB", "Budget NVMe SSD, 3500MB/s, perfect for everyday use", 3499},
	},
	"Power Supply (PSU)": {
		{"Corsair RM1000x", "1000W 80+ Gold fully modular, Japanese capacitors, 10-year warranty", 9999},
		{"Seasonic FOCUS GX-850", "850W 80+ Gold, 10-year warranty, ultra-quiet operation", 7999},
	},
	"Computer Cases": {
		{"Lian Li O11 Dynamic EVO", "Mid-tower, excellent airflow, tempered glass, E-ATX support", 7999},
		{"Fractal Design Meshify 2", "Mid-tower, minimalist Scandinavian design, great airflow", 6499},
	},
	"Monitors": {
		{"LG 27GP950-B", "27\" 4K 144Hz Nano IPS, HDMI 2.1, perfect for console gaming", 35999},
		{"Dell S2721DGF", "27\" 1440p 165Hz IPS, excellent value, FreeSync/G-Sync", 18999},
		{"AOC 24G2", "24\" 1080p 144Hz IPS, budget esports monitor, great colors", 8999},
	},
	"Keyboards": {
		{"Ducky One 3 SF", "65% mechanical keyboard, Cherry MX switches, premium PBT keycaps", 7999},
		{"Keychron K8 Pro", "TKL wireless mechanical, hot-swappable switches, Mac compatible", 6999},
		{"Royal Kludge RK84", "Budget 75% hot-swappable, RGB, great value", 2999},
	},
	"Mice": {
		{"Logitech G Pro X Superlight", "Wireless gaming mouse, 63g ultra-light, HERO 25K sensor", 7999},
		{"Razer DeathAdder V3", "Ergonomic design, Focus Pro 30K sensor, 59g", 3999},
		{"Glorious Model O", "Honeycomb lightweight design, 67g, RGB lighting", 2499},
	},
}

// seed products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Seed a demo vendor with a demo product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return seedProducts(db)
	},
}

// demoVendor gets or creates the techparts_store account that owns the
// seeded catalog.
func demoVendor(db *gorm.DB) (*models.User, error) {
	userRepo := repositories.NewGORMUserRepository(db)

	vendor, err := userRepo.GetByUsername(demoVendorUsername)
	if err == nil {
		return vendor, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	vendor = &models.User{
		Username: demoVendorUsername,
		Email:    "store@techparts.com",
		Password: demoVendorPassword,
		Role:     models.RoleVendor,
		Phone:    "09123456789",
		Address:  "Metro Manila, Philippines",
	}
	if err := authService.RegisterUser(vendor); err != nil {
		return nil, fmt.Errorf("failed to create demo vendor: %w", err)
	}
	fmt.Printf("created demo vendor %s (password: %s)\n", demoVendorUsername, demoVendorPassword)
	return vendor, nil
}

func seedProducts(db *gorm.DB) error {
	vendor, err := demoVendor(db)
	if err != nil {
		return err
	}

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	productService := services.NewProductService(productRepo, orderRepo)

	created, skipped := 0, 0
	for categoryName, fixtures := range productFixtures {
		category, err := categoryRepo.GetByName(categoryName)
		if err != nil {
			fmt.Printf("category not found, skipping: %s\n", categoryName)
			continue
		}

		for _, fixture := range fixtures {
			exists, err := productRepo.SlugExists(slug.Make(fixture.name))
			if err != nil {
				return err
			}
			if exists {
				skipped++
				continue
			}

			product := &models.Product{
				CategoryID:  category.ID,
				Name:        fixture.name,
				Description: fixture.description,
				Price:       fixture.price,
				Stock:       15 + rand.Intn(61),
				IsActive:    true,
			}
			if err := productService.CreateProduct(vendor.ID, product); err != nil {
				return fmt.Errorf("failed to seed product %q: %w", fixture.name, err)
			}
			created++
			fmt.Printf("created: %s\n", fixture.name)
		}
	}
	fmt.Printf("products seeded, %d new, %d skipped\n", created, skipped)
	return nil
}
