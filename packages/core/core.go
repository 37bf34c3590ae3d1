package core

import (
	"log"

	"core/cron"
	"core/handlers"
	"core/services"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

type Module struct {
	FieldHandler        *handlers.FieldHandler
	FieldService        *services.FieldService
	AvailabilityHandler *handlers.AvailabilityHandler
	AvailabilityService *services.AvailabilityService
	ReservationHandler  *handlers.ReservationHandler
	ReservationService  *services.ReservationService
	ClosureHandler      *handlers.ClosureHandler
	ClosureService      *services.ClosureService
	AcademyHandler      *handlers.AcademyHandler
	AcademyService      *services.AcademyService
	TournamentHandler   *handlers.TournamentHandler
	TournamentService   *services.TournamentService
	BracketHandler      *handlers.BracketHandler
	BracketService      *services.BracketService
	EmailService        services.EmailService
	Scheduler           *cron.Scheduler
	db                  *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	clock := clockwork.NewRealClock()
	emailService := services.NewEmailService()

	fieldService := services.NewFieldService(db)
	fieldHandler := handlers.NewFieldHandler(fieldService)

	availabilityService := services.NewAvailabilityService(db)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	reservationService := services.NewReservationService(db, emailService, clock)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	closureService := services.NewClosureService(db)
	closureHandler := handlers.NewClosureHandler(closureService)

	academyService := services.NewAcademyService(db)
	academyHandler := handlers.NewAcademyHandler(academyService)

	tournamentService := services.NewTournamentService(db)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)

	bracketService := services.NewBracketServiceWithClock(db, clock)
	bracketHandler := handlers.NewBracketHandler(bracketService)

	scheduler := cron.NewScheduler(reservationService)

	return &Module{
		FieldHandler:        fieldHandler,
		FieldService:        fieldService,
		AvailabilityHandler: availabilityHandler,
		AvailabilityService: availabilityService,
		ReservationHandler:  reservationHandler,
		ReservationService:  reservationService,
		ClosureHandler:      closureHandler,
		ClosureService:      closureService,
		AcademyHandler:      academyHandler,
		AcademyService:      academyService,
		TournamentHandler:   tournamentHandler,
		TournamentService:   tournamentService,
		BracketHandler:      bracketHandler,
		BracketService:      bracketService,
		EmailService:        emailService,
		Scheduler:           scheduler,
		db:                  db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	admin := authMiddleware.JWTMiddleware()
	adminRole := authMiddleware.RequireRole(m.db, authModels.RoleAdmin)

	fields := r.Group("/fields")
	{
		fields.GET("", m.FieldHandler.GetFields)
		fields.GET("/:id", m.FieldHandler.GetField)
		fields.GET("/:id/peers", m.FieldHandler.GetFieldPeers)
		fields.GET("/:id/schedule", m.AvailabilityHandler.GetWeekSchedule)
		fields.POST("", admin, adminRole, m.FieldHandler.CreateField)
		fields.PUT("/:id", admin, adminRole, m.FieldHandler.UpdateField)
		fields.DELETE("/:id", admin, adminRole, m.FieldHandler.DeleteField)
	}

	groups := r.Group("/field-groups")
	{
		groups.GET("", m.FieldHandler.GetGroups)
		groups.GET("/:id", m.FieldHandler.GetGroup)
		groups.POST("", admin, adminRole, m.FieldHandler.CreateGroup)
		groups.PUT("/:id/members", admin, adminRole, m.FieldHandler.SetGroupMembers)
		groups.DELETE("/:id", admin, adminRole, m.FieldHandler.DeleteGroup)
	}

	r.GET("/availability", m.AvailabilityHandler.CheckAvailability)

	reservations := r.Group("/reservations")
	{
		reservations.GET("", admin, m.ReservationHandler.GetReservations)
		reservations.GET("/:id", admin, m.ReservationHandler.GetReservation)
		reservations.GET("/code/:code", m.ReservationHandler.GetReservationByCode)
		reservations.POST("", m.ReservationHandler.CreateReservation)
		reservations.PUT("/:id/status", admin, m.ReservationHandler.UpdateReservationStatus)
		reservations.POST("/:id/cancel", admin, m.ReservationHandler.CancelReservation)
		reservations.DELETE("/:id", admin, adminRole, m.ReservationHandler.DeleteReservation)
	}

	closures := r.Group("/closures")
	{
		closures.GET("", admin, m.ClosureHandler.GetClosures)
		closures.POST("", admin, adminRole, m.ClosureHandler.CloseDate)
		closures.DELETE("/:date", admin, adminRole, m.ClosureHandler.ReopenDate)
	}

	academy := r.Group("/academy/sessions")
	{
		academy.GET("", m.AcademyHandler.GetSessions)
		academy.GET("/:id", m.AcademyHandler.GetSession)
		academy.POST("", admin, m.AcademyHandler.CreateSession)
		academy.PUT("/:id", admin, m.AcademyHandler.UpdateSession)
		academy.DELETE("/:id", admin, m.AcademyHandler.DeleteSession)
	}

	tournaments := r.Group("/tournaments")
	{
		tournaments.GET("", m.TournamentHandler.GetTournaments)
		tournaments.GET("/:id", m.TournamentHandler.GetTournament)
		tournaments.GET("/:id/teams", m.TournamentHandler.GetTeams)
		tournaments.GET("/:id/matchdays", m.TournamentHandler.GetMatchdays)
		tournaments.GET("/:id/standings", m.TournamentHandler.GetStandings)
		tournaments.GET("/:id/bracket", m.BracketHandler.GetBracket)
		tournaments.POST("", admin, adminRole, m.TournamentHandler.CreateTournament)
		tournaments.PUT("/:id", admin, adminRole, m.TournamentHandler.UpdateTournament)
		tournaments.DELETE("/:id", admin, adminRole, m.TournamentHandler.DeleteTournament)
		tournaments.POST("/:id/teams", admin, m.TournamentHandler.AddTeam)
		tournaments.DELETE("/:id/teams/:teamId", admin, m.TournamentHandler.RemoveTeam)
		tournaments.POST("/:id/fixtures", admin, adminRole, m.TournamentHandler.GenerateFixtures)
		tournaments.POST("/:id/bracket", admin, adminRole, m.BracketHandler.GenerateBracket)
	}

	matches := r.Group("/matches")
	{
		matches.PUT("/:matchId/result", admin, m.TournamentHandler.UpdateMatchResult)
	}

	bracketMatches := r.Group("/bracket-matches")
	{
		bracketMatches.PUT("/:matchId", admin, m.BracketHandler.UpdateLeg)
		bracketMatches.POST("/:matchId/close", admin, adminRole, m.BracketHandler.CloseSeries)
		bracketMatches.POST("/:matchId/undo", admin, adminRole, m.BracketHandler.UndoSeries)
		bracketMatches.PUT("/:matchId/slot", admin, adminRole, m.BracketHandler.AssignSlot)
	}
}

// StartScheduler starts the cron scheduler for reservation expiry
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunReservationExpiryNow manually triggers reservation expiry (useful for testing)
func (m *Module) RunReservationExpiryNow() {
	log.Println("Manually triggering reservation expiry...")
	m.Scheduler.RunNow()
}
