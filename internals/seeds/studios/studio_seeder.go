package studios

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nvourlidas/CtGym-sub002/internals/features/studios/studios/model"
)

type studioSeed struct {
	StudioName     string `json:"name"`
	StudioSlug     string `json:"slug"`
	StudioTimezone string `json:"timezone"`
}

// SeedStudiosFromJSON loads demo tenants for local development. Existing slugs
// are left untouched.
func SeedStudiosFromJSON(db *gorm.DB, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[SEED] skip studios: %v", err)
		return
	}

	var seeds []studioSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Printf("[SEED] bad studios file %s: %v", path, err)
		return
	}

	for _, s := range seeds {
		studio := model.StudioModel{
			StudioName:     s.StudioName,
			StudioSlug:     s.StudioSlug,
			StudioTimezone: s.StudioTimezone,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "studio_slug"}},
			DoNothing: true,
		}).Create(&studio).Error; err != nil {
			log.Printf("[SEED] studio %s: %v", s.StudioSlug, err)
		}
	}
	log.Printf("[SEED] studios done (%d entries)", len(seeds))
}
