package services

import (
	"GestionClinique/cache"
	"GestionClinique/database"
	"GestionClinique/models"
	"GestionClinique/repositories"
	"GestionClinique/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeRecorder struct {
	actions []string
}

func (f *fakeRecorder) RecordAction(_ context.Context, description string) {
	f.actions = append(f.actions, description)
}

type fakeNotifier struct {
	notified int
}

func (f *fakeNotifier) NotifyRendezVousCree(_ context.Context, _ *models.RendezVous, _ *models.Utilisateur) {
	f.notified++
}

type fakeStats struct {
	refreshes int
}

func (f *fakeStats) RefreshAll(_ context.Context) {
	f.refreshes++
}

// testEnv wires the full service stack over an in-memory sqlite database.
type testEnv struct {
	db       *gorm.DB
	recorder *fakeRecorder
	notifier *fakeNotifier
	stats    *fakeStats

	rendezVousRepo   *repositories.RendezVousRepository
	factureRepo      *repositories.FactureRepository
	consultationRepo *repositories.ConsultationRepository
	salleRepo        *repositories.SalleRepository
	patientRepo      *repositories.PatientRepository
	utilisateurRepo  *repositories.UtilisateurRepository

	rendezVous    *RendezVousService
	factures      *FactureService
	consultations *ConsultationService

	patient *models.Patient
	medecin *models.Utilisateur
	salle   *models.Salle
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, models.SeedSalles(db))

	noCache := cache.NewCache(nil)
	env := &testEnv{
		db:       db,
		recorder: &fakeRecorder{},
		notifier: &fakeNotifier{},
		stats:    &fakeStats{},
	}

	env.rendezVousRepo = repositories.NewRendezVousRepository(db, noCache)
	env.factureRepo = repositories.NewFactureRepository(db, noCache)
	env.consultationRepo = repositories.NewConsultationRepository(db, noCache)
	env.salleRepo = repositories.NewSalleRepository(db, noCache)
	env.patientRepo = repositories.NewPatientRepository(db, noCache)
	env.utilisateurRepo = repositories.NewUtilisateurRepository(db, noCache)

	env.factures = NewFactureService(db, env.factureRepo, env.rendezVousRepo, env.recorder, env.stats)
	env.rendezVous = NewRendezVousService(db, env.rendezVousRepo, env.salleRepo, env.patientRepo,
		env.utilisateurRepo, env.consultationRepo, env.factures, env.recorder, env.notifier, env.stats)
	env.consultations = NewConsultationService(db, env.consultationRepo, env.rendezVousRepo, env.salleRepo,
		env.patientRepo, env.utilisateurRepo, env.factures, env.recorder, env.stats)

	env.patient = env.createPatient(t, "Diallo", "Aminata")
	env.medecin = env.createMedecin(t, "kone@clinique.test", models.Cardiologie)

	salle, err := env.salleRepo.FindByServiceMedical(context.Background(), models.Cardiologie)
	require.NoError(t, err)
	require.NotNil(t, salle)
	env.salle = salle

	return env
}

func (env *testEnv) createPatient(t *testing.T, nom, prenom string) *models.Patient {
	t.Helper()
	patient := &models.Patient{
		Nom:           nom,
		Prenom:        prenom,
		Sexe:          "F",
		DateNaissance: "1990-04-12",
	}
	require.NoError(t, env.patientRepo.Create(context.Background(), patient))
	return patient
}

func (env *testEnv) createMedecin(t *testing.T, email string, service models.ServiceMedical) *models.Utilisateur {
	t.Helper()
	medecin := &models.Utilisateur{
		Nom:            "Kone",
		Prenom:         "Ibrahim",
		Email:          email,
		Password:       "not-a-real-hash",
		Role:           models.RoleMedecin,
		ServiceMedical: &service,
	}
	require.NoError(t, env.utilisateurRepo.Create(context.Background(), medecin))
	return medecin
}

// futureSlot returns a bookable day and hour, offset days ahead.
func futureSlot(offset int) (string, string) {
	return time.Now().AddDate(0, 0, offset).Format(utils.JourLayout), "10:00"
}

// bookRendezVous books a slot through the service, with the facture generated
// alongside.
func (env *testEnv) bookRendezVous(t *testing.T, jour, heure string) *models.RendezVous {
	t.Helper()
	rendezVous, err := env.rendezVous.Create(context.Background(), RendezVousInput{
		Jour:           jour,
		Heure:          heure,
		ServiceMedical: models.Cardiologie,
		PatientID:      env.patient.ID,
		MedecinID:      env.medecin.ID,
	})
	require.NoError(t, err)
	return rendezVous
}

// payRendezVous settles the facture of a rendez-vous, moving it to CONFIRME.
func (env *testEnv) payRendezVous(t *testing.T, rendezVousID uint) *models.Facture {
	t.Helper()
	facture, err := env.factureRepo.FindByRendezVousID(context.Background(), rendezVousID)
	require.NoError(t, err)
	require.NotNil(t, facture)
	paid, err := env.factures.Payer(context.Background(), facture.ID, models.PaiementEspeces)
	require.NoError(t, err)
	return paid
}
