package store

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recati/comanda-app/models"
)

// snapshotMeta is the single-row table carrying the snapshot version and id
// counters alongside the entity tables.
type snapshotMeta struct {
	ID       uint            `gorm:"primaryKey"`
	Version  int             `gorm:"not null"`
	Counters models.Counters `gorm:"serializer:json;type:text"`
}

func (snapshotMeta) TableName() string { return "snapshot_meta" }

// DBGateway persists the snapshot into a relational database through gorm.
// Save replaces every row inside one transaction, so the stored state is
// always a complete snapshot, never a partial one.
type DBGateway struct {
	db *gorm.DB
}

// NewDBGateway opens the database selected by driver ("sqlite" or "mysql")
// and migrates the schema.
func NewDBGateway(driver, dsn string) (*DBGateway, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&snapshotMeta{},
		&models.Product{},
		&models.Addon{},
		&models.ComandaCode{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddon{},
		&models.Payment{},
	)
	if err != nil {
		return nil, err
	}
	return &DBGateway{db: db}, nil
}

func (g *DBGateway) Load() (*models.Snapshot, error) {
	var meta snapshotMeta
	if err := g.db.First(&meta).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if meta.Version != models.SnapshotVersion {
		return nil, nil
	}

	snap := models.NewSnapshot()
	snap.Counters = meta.Counters
	if err := g.db.Order("id").Find(&snap.Products).Error; err != nil {
		return nil, err
	}
	if err := g.db.Order("id").Find(&snap.Addons).Error; err != nil {
		return nil, err
	}
	if err := g.db.Order("id").Find(&snap.Codes).Error; err != nil {
		return nil, err
	}
	if err := g.db.Preload("Items.Addons").Preload("Items").Order("id").Find(&snap.Orders).Error; err != nil {
		return nil, err
	}
	if err := g.db.Order("id").Find(&snap.Payments).Error; err != nil {
		return nil, err
	}
	return snap, nil
}

func (g *DBGateway) Save(snap *models.Snapshot) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{
			&models.Payment{},
			&models.OrderItemAddon{},
			&models.OrderItem{},
			&models.Order{},
			&models.ComandaCode{},
			&models.Addon{},
			&models.Product{},
			&snapshotMeta{},
		} {
			if err := wipe.Delete(model).Error; err != nil {
				return err
			}
		}

		meta := snapshotMeta{ID: 1, Version: snap.Version, Counters: snap.Counters}
		if err := tx.Create(&meta).Error; err != nil {
			return err
		}
		if len(snap.Products) > 0 {
			if err := tx.Create(&snap.Products).Error; err != nil {
				return err
			}
		}
		if len(snap.Addons) > 0 {
			if err := tx.Create(&snap.Addons).Error; err != nil {
				return err
			}
		}
		if len(snap.Codes) > 0 {
			if err := tx.Create(&snap.Codes).Error; err != nil {
				return err
			}
		}
		if len(snap.Orders) > 0 {
			if err := tx.Create(&snap.Orders).Error; err != nil {
				return err
			}
		}
		if len(snap.Payments) > 0 {
			if err := tx.Create(&snap.Payments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
