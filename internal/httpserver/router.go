package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusgear/internal/auth"
	"campusgear/internal/httpserver/handlers"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Post("/register", handlers.Register(db, lg))
	r.Post("/login", handlers.Login(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db))

		protected.Get("/logout", handlers.Logout(db))
		protected.Get("/dashboard", handlers.Dashboard(db, lg))

		protected.Get("/equipment", handlers.ListEquipment(db, lg))

		protected.Get("/reservations", handlers.ListReservations(db, lg))
		protected.Get("/reservations/calendar", handlers.ReservationsCalendar(db, lg))
		protected.Post("/reservations/create", handlers.CreateReservation(db, lg))
		protected.Get("/reservations/{id}", handlers.GetReservation(db, lg))

		protected.Get("/tickets", handlers.ListTickets(db, lg))
		protected.Post("/tickets/create", handlers.CreateTicket(db, lg))
		protected.Get("/tickets/{id}", handlers.GetTicket(db, lg))
		protected.Post("/tickets/{id}", handlers.AddTicketNote(db, lg))

		protected.Get("/api/stats/reservations_by_equipment", handlers.ReservationsByEquipment(db, lg))

		protected.Group(func(staff chi.Router) {
			staff.Use(auth.RequireStaff)
			staff.Post("/equipment/create", handlers.CreateEquipment(db, lg))
			staff.Post("/equipment/{id}/edit", handlers.EditEquipment(db, lg))
			staff.Post("/equipment/{id}/delete", handlers.DeleteEquipment(db, lg))
			staff.Post("/reservations/{id}/status", handlers.SetReservationStatus(db, lg))
			staff.Get("/loans", handlers.ListLoans(db, lg))
			staff.Post("/loans/create/{reservationID}", handlers.CreateLoan(db, lg))
			staff.Post("/loans/return/{loanID}", handlers.ReturnLoan(db, lg))
			staff.Post("/tickets/{id}/edit", handlers.EditTicket(db, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
