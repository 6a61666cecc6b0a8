package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"lineup/internal/infrastructure/persistence/models"
)

// SeedFile is the YAML layout for seeding locations and their counters.
type SeedFile struct {
	Locations []SeedLocation `yaml:"locations"`
}

type SeedLocation struct {
	Name     string        `yaml:"name"`
	Active   *bool         `yaml:"active"`
	Counters []SeedCounter `yaml:"counters"`
}

type SeedCounter struct {
	Name           string `yaml:"name"`
	Prefix         string `yaml:"prefix"`
	OpenTime       string `yaml:"open_time"`
	CloseTime      string `yaml:"close_time"`
	CapacityPerDay int    `yaml:"capacity_per_day"`
	Active         *bool  `yaml:"active"`
}

// SeedQueueFromFile loads locations and counters from a YAML file. Rows are
// matched by name, so re-running the seed is idempotent.
func SeedQueueFromFile(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	return seedLocations(db, file.Locations)
}

// SeedDefaultQueue creates one location with two counters for development
// environments that have no seed file.
func SeedDefaultQueue(db *gorm.DB) error {
	return seedLocations(db, []SeedLocation{
		{
			Name: "Main Branch",
			Counters: []SeedCounter{
				{Name: "Registration", Prefix: "A", OpenTime: "08:00", CloseTime: "16:00", CapacityPerDay: 200},
				{Name: "Cashier", Prefix: "B", OpenTime: "08:00", CloseTime: "16:00", CapacityPerDay: 150},
			},
		},
	})
}

func seedLocations(db *gorm.DB, locations []SeedLocation) error {
	if err := validatePrefixes(locations); err != nil {
		return err
	}

	for _, loc := range locations {
		if loc.Name == "" {
			return fmt.Errorf("seed location is missing a name")
		}

		locModel := models.LocationModel{
			Name:   loc.Name,
			Active: boolOrTrue(loc.Active),
		}
		if err := db.Where(models.LocationModel{Name: loc.Name}).
			FirstOrCreate(&locModel).Error; err != nil {
			return fmt.Errorf("failed to seed location %q: %w", loc.Name, err)
		}

		for _, ctr := range loc.Counters {
			if ctr.Name == "" || ctr.Prefix == "" {
				return fmt.Errorf("seed counter under %q needs a name and prefix", loc.Name)
			}
			if ctr.CapacityPerDay <= 0 {
				return fmt.Errorf("seed counter %q needs a positive capacity", ctr.Name)
			}

			model := models.CounterModel{
				LocationID:     locModel.ID,
				Name:           ctr.Name,
				Prefix:         ctr.Prefix,
				OpenTime:       timeOrAllDay(ctr.OpenTime),
				CloseTime:      timeOrAllDay(ctr.CloseTime),
				CapacityPerDay: ctr.CapacityPerDay,
				Active:         boolOrTrue(ctr.Active),
			}
			if err := db.Where(models.CounterModel{LocationID: locModel.ID, Name: ctr.Name}).
				FirstOrCreate(&model).Error; err != nil {
				return fmt.Errorf("failed to seed counter %q: %w", ctr.Name, err)
			}
		}
	}
	return nil
}

// validatePrefixes rejects seed input where two counters share a prefix.
// Queue numbers are prefix+sequence and unique per date across all counters,
// so a shared prefix would make the two counters fight over the same numbers.
func validatePrefixes(locations []SeedLocation) error {
	seen := make(map[string]string)
	for _, loc := range locations {
		for _, ctr := range loc.Counters {
			if other, ok := seen[ctr.Prefix]; ok {
				return fmt.Errorf("counters %q and %q share prefix %q", other, ctr.Name, ctr.Prefix)
			}
			seen[ctr.Prefix] = ctr.Name
		}
	}
	return nil
}

func boolOrTrue(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func timeOrAllDay(v string) string {
	if v == "" {
		return "00:00"
	}
	return v
}
