package main

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

var categoryFixtures = []models.Category{
	{Name: "Processors (CPU)", Description: "Intel, AMD processors and CPU coolers"},
	{Name: "Graphics Cards (GPU)", Description: "NVIDIA, AMD graphics cards"},
	{Name: "Motherboards", Description: "ATX, Micro-ATX, Mini-ITX motherboards"},
	{Name: "Memory (RAM)", Description: "DDR4, DDR5 RAM modules"},
	{Name: "Storage (SSD/HDD)", Description: "Solid State Drives, Hard Disk Drives"},
	{Name: "Power Supply (PSU)", Description: "Modular and non-modular PSUs"},
	{Name: "Computer Cases", Description: "Mid-tower, Full-tower, Mini cases"},
	{Name: "Cooling Systems", Description: "Air coolers, liquid cooling, case fans"},
	{Name: "Monitors", Description: "LCD, LED, Gaming monitors"},
	{Name: "Keyboards", Description: "Mechanical, membrane, gaming keyboards"},
	{Name: "Mice", Description: "Gaming, wireless, wired mice"},
	{Name: "Headsets & Audio", Description: "Gaming headsets, speakers"},
	{Name: "Networking", Description: "Routers, WiFi adapters, network cards"},
	{Name: "Cables & Adapters", Description: "HDMI, DisplayPort, USB cables"},
	{Name: "Peripherals", Description: "Webcams, microphones, accessories"},
}

// seed categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Seed the computer-parts category tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		return seedCategories(db)
	},
}

func seedCategories(db *gorm.DB) error {
	repo := repositories.NewGORMCategoryRepository(db)

	created := 0
	for _, fixture := range categoryFixtures {
		_, err := repo.GetByName(fixture.Name)
		if err == nil {
			fmt.Printf("already exists: %s\n", fixture.Name)
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		category := fixture
		category.Slug = slug.Make(category.Name)
		if err := repo.Create(&category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
		created++
		fmt.Printf("created: %s\n", category.Name)
	}
	fmt.Printf("categories seeded, %d new\n", created)
	return nil
}
