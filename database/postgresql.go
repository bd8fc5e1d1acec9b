package database

import (
	"GestionClinique/models"
	"context"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance.
var DB *gorm.DB

// InitDB initializes the database connection and configures it.
func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	var err error

	// Configure logging level based on environment
	logMode := logger.Silent
	if os.Getenv("ENV") == "development" {
		logMode = logger.Info
	}

	// Open the database connection
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	// Configure connection pool
	if err := configureConnectionPool(); err != nil {
		return nil, err
	}

	// Test the database connection
	if err := testDatabaseConnection(ctx); err != nil {
		return nil, err
	}

	// Run migrations
	if err := Migrate(DB); err != nil {
		return nil, err
	}

	// Seed initial data
	if err := models.SeedSalles(DB); err != nil {
		return nil, errors.Wrap(err, "failed to seed salles")
	}

	log.Println("Database initialized successfully.")
	return DB, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// testDatabaseConnection verifies that the database connection is functional.
func testDatabaseConnection(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// Migrate performs schema migrations and creates the partial unique indexes
// that enforce slot uniqueness among non-cancelled rendez-vous. The indexes
// hold on every write path, whether or not the availability check ran first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Utilisateur{},
		&models.Patient{},
		&models.DossierMedical{},
		&models.Salle{},
		&models.RendezVous{},
		&models.Facture{},
		&models.Consultation{},
		&models.Prescription{},
		&models.Notification{},
		&models.HistoriqueAction{},
		&models.StatDuJour{},
		&models.StatsMois{},
		&models.StatsSurLannee{},
	); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	slotIndexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rdv_slot_medecin ON rendez_vous (jour, heure, medecin_id) WHERE statut <> 'ANNULE'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rdv_slot_salle ON rendez_vous (jour, heure, salle_id) WHERE statut <> 'ANNULE'`,
	}
	for _, stmt := range slotIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return errors.Wrap(err, "failed to create slot uniqueness index")
		}
	}
	return nil
}

// LoadEnvConfig retrieves configuration values from environment variables.
func LoadEnvConfig() (string, error) {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		return "", errors.New("missing DB_URL environment variable")
	}
	return dsn, nil
}
