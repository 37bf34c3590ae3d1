package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"

	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateTestData seeds an admin user, the facility layout (fields and
// their shared-space group), academy sessions, a batch of reservations
// and a league tournament with registered teams.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	if err := f.generateUsers(); err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	fields, err := f.generateFields()
	if err != nil {
		return fmt.Errorf("failed to generate fields: %w", err)
	}

	if err := f.generateAcademySessions(fields); err != nil {
		return fmt.Errorf("failed to generate academy sessions: %w", err)
	}

	if err := f.generateReservations(fields); err != nil {
		return fmt.Errorf("failed to generate reservations: %w", err)
	}

	if err := f.generateTournament(fields); err != nil {
		return fmt.Errorf("failed to generate tournament: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	return nil
}

func (f *Fixtures) generateUsers() error {
	defs := []struct {
		email    string
		username string
		roles    authModels.Roles
	}{
		{"admin@cancha.local", "admin", authModels.GetAllRoles()},
		{"staff@cancha.local", "staff", authModels.Roles{authModels.RoleUser, authModels.RoleStaff}},
	}

	for _, def := range defs {
		hashedPassword, err := authUtils.HashPassword("password123")
		if err != nil {
			return err
		}

		user := authModels.User{
			Email:    def.email,
			Username: def.username,
			Password: hashedPassword,
			Enabled:  true,
			Roles:    def.roles,
		}

		if err := f.db.Create(&user).Error; err != nil {
			return err
		}

		log.Printf("Created user: %s (ID: %d)", def.username, user.ID)
	}

	return nil
}

// generateFields builds the usual layout of a small complex: one F7
// field that physically spans two F5 fields, plus a standalone F5.
func (f *Fixtures) generateFields() ([]models.Field, error) {
	defs := []struct {
		name   string
		format string
		rate   float64
	}{
		{"Cancha Grande", models.FormatF7, 60},
		{"Cancha 1", models.FormatF5, 35},
		{"Cancha 2", models.FormatF5, 35},
		{"Cancha 3", models.FormatF5, 30},
	}

	var fields []models.Field
	for _, def := range defs {
		field := models.Field{
			Name:       def.name,
			Format:     def.format,
			HourlyRate: def.rate,
			Active:     true,
		}

		if err := f.db.Create(&field).Error; err != nil {
			return nil, err
		}

		fields = append(fields, field)
		log.Printf("Created field: %s (ID: %d, %s)", field.Name, field.ID, field.Format)
	}

	// The F7 shares its surface with the first two F5 fields.
	group := models.FieldGroup{Name: "Cancha Grande + mitades"}
	if err := f.db.Create(&group).Error; err != nil {
		return nil, err
	}
	for _, field := range fields[:3] {
		member := models.FieldGroupMember{GroupID: group.ID, FieldID: field.ID}
		if err := f.db.Create(&member).Error; err != nil {
			return nil, err
		}
	}
	log.Printf("Created field group: %s (ID: %d, 3 members)", group.Name, group.ID)

	return fields, nil
}

func (f *Fixtures) generateAcademySessions(fields []models.Field) error {
	defs := []struct {
		fieldIdx  int
		weekday   int
		start     string
		end       string
		coach     string
	}{
		{3, int(time.Monday), "17:00:00", "19:00:00", "Diego Paz"},
		{3, int(time.Wednesday), "17:00:00", "19:00:00", "Diego Paz"},
		{1, int(time.Friday), "16:00:00", "18:00:00", "Ana Ruiz"},
	}

	for _, def := range defs {
		session := models.AcademySession{
			FieldID:   fields[def.fieldIdx].ID,
			Weekday:   def.weekday,
			StartTime: def.start,
			EndTime:   def.end,
			Coach:     def.coach,
			Active:    true,
		}

		if err := f.db.Create(&session).Error; err != nil {
			return err
		}
	}

	log.Printf("Created %d academy sessions", len(defs))
	return nil
}

func (f *Fixtures) generateReservations(fields []models.Field) error {
	names := []string{
		"Carlos Mendez", "Lucia Fernandez", "Martin Lopez", "Sofia Garcia",
		"Pedro Alvarez", "Valentina Diaz", "Javier Romero", "Camila Torres",
	}
	hours := []string{"18:00:00", "19:00:00", "20:00:00", "21:00:00"}

	now := time.Now()
	count := 0

	for i := 0; i < 20; i++ {
		daysAhead := rand.Intn(14) // #nosec G404
		date := now.AddDate(0, 0, daysAhead)

		field := fields[rand.Intn(len(fields))] // #nosec G404
		start := hours[rand.Intn(len(hours))]   // #nosec G404
		endHour := (int(start[0]-'0')*10 + int(start[1]-'0') + 1) % 24
		end := fmt.Sprintf("%02d:00:00", endHour)

		status := models.ReservationPaid
		if rand.Float32() < 0.3 { // #nosec G404
			status = models.ReservationPending
		}

		reservation := models.Reservation{
			Code:         fmt.Sprintf("FX%06d", i+1),
			FieldID:      field.ID,
			Date:         time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			StartTime:    start,
			EndTime:      end,
			CustomerName: names[rand.Intn(len(names))], // #nosec G404
			TotalPrice:   field.HourlyRate,
			Status:       status,
		}

		if err := f.db.Create(&reservation).Error; err != nil {
			// Overlapping seed slots are fine to skip.
			continue
		}
		count++
	}

	log.Printf("Created %d reservations", count)
	return nil
}

func (f *Fixtures) generateTournament(fields []models.Field) error {
	now := time.Now()
	startDate := now.AddDate(0, 0, 7)

	tournament := models.Tournament{
		Name:            "Liga de Verano",
		Format:          models.FormatF5,
		Type:            models.TournamentMixed,
		Phase:           models.PhaseLeague,
		RoundTrip:       false,
		Weekday:         int(time.Saturday),
		StartDate:       time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC),
		QualifyingCount: 4,
		InscriptionCost: 150,
	}

	if err := f.db.Create(&tournament).Error; err != nil {
		return err
	}

	slots := []models.TournamentTimeSlot{
		{TournamentID: tournament.ID, StartTime: "09:00:00", EndTime: "13:00:00"},
		{TournamentID: tournament.ID, StartTime: "15:00:00", EndTime: "18:00:00"},
	}
	for i := range slots {
		if err := f.db.Create(&slots[i]).Error; err != nil {
			return err
		}
	}

	for i, field := range []models.Field{fields[1], fields[2]} {
		tf := models.TournamentField{
			TournamentID: tournament.ID,
			FieldID:      field.ID,
			Position:     i,
		}
		if err := f.db.Create(&tf).Error; err != nil {
			return err
		}
	}

	teamNames := []string{
		"Los Tigres", "Deportivo Sur", "Atletico Norte", "Real Barrio",
		"Club Central", "Racing Viejo", "Defensores", "Juventud Unida",
	}
	for _, name := range teamNames {
		team := models.Team{Name: name, TournamentID: tournament.ID}
		if err := f.db.Create(&team).Error; err != nil {
			return err
		}
	}

	log.Printf("Created tournament: %s (ID: %d, %d teams)", tournament.Name, tournament.ID, len(teamNames))
	return nil
}

// ClearAllData removes all fixture data
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	// Delete in correct order due to foreign key constraints
	tables := []interface{}{
		&models.BracketMatch{},
		&models.BracketRound{},
		&models.Bracket{},
		&models.LeagueMatch{},
		&models.Matchday{},
		&models.Team{},
		&models.TournamentField{},
		&models.TournamentTimeSlot{},
		&models.Tournament{},
		&models.AcademySession{},
		&models.ClosedDate{},
		&models.Reservation{},
		&models.FieldGroupMember{},
		&models.FieldGroup{},
		&models.Field{},
		&authModels.RefreshToken{},
		&authModels.User{},
	}

	for _, table := range tables {
		if err := f.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	// Reset auto-increment sequences to start from 1
	sequences := []string{
		"ALTER SEQUENCE users_id_seq RESTART WITH 1",
		"ALTER SEQUENCE refresh_tokens_id_seq RESTART WITH 1",
		"ALTER SEQUENCE fields_id_seq RESTART WITH 1",
		"ALTER SEQUENCE field_groups_id_seq RESTART WITH 1",
		"ALTER SEQUENCE field_group_members_id_seq RESTART WITH 1",
		"ALTER SEQUENCE reservations_id_seq RESTART WITH 1",
		"ALTER SEQUENCE closed_dates_id_seq RESTART WITH 1",
		"ALTER SEQUENCE academy_sessions_id_seq RESTART WITH 1",
		"ALTER SEQUENCE tournaments_id_seq RESTART WITH 1",
		"ALTER SEQUENCE tournament_time_slots_id_seq RESTART WITH 1",
		"ALTER SEQUENCE tournament_fields_id_seq RESTART WITH 1",
		"ALTER SEQUENCE teams_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matchdays_id_seq RESTART WITH 1",
		"ALTER SEQUENCE league_matches_id_seq RESTART WITH 1",
		"ALTER SEQUENCE brackets_id_seq RESTART WITH 1",
		"ALTER SEQUENCE bracket_rounds_id_seq RESTART WITH 1",
		"ALTER SEQUENCE bracket_matches_id_seq RESTART WITH 1",
	}

	for _, seq := range sequences {
		f.db.Exec(seq)
	}

	log.Println("All fixture data cleared!")
	return nil
}
