package seeds

import (
	"gorm.io/gorm"

	studios "github.com/nvourlidas/CtGym-sub002/internals/seeds/studios"
)

func RunAllSeeds(db *gorm.DB) {
	studios.SeedStudiosFromJSON(db, "internals/seeds/studios/data_studios.json")
}
