package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"frontdesk/internal/api"
	"frontdesk/internal/approval"
	"frontdesk/internal/auth"
	"frontdesk/internal/desk"
	"frontdesk/internal/folio"
	"frontdesk/internal/refresh"
	"frontdesk/internal/reservation"
	"frontdesk/internal/room"
	"frontdesk/internal/settings"
	"frontdesk/pkg/config"
)

type Dependencies struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Log    *zap.Logger
	Events *refresh.Publisher

	// Desk is built once so cmd/api can share the grid snapshot between the
	// router and the refresh listener.
	Desk *desk.Handlers
}

// NewDeskHandlers wires the desk's repositories onto the pool.
func NewDeskHandlers(db *pgxpool.Pool, log *zap.Logger, events *refresh.Publisher) *desk.Handlers {
	return &desk.Handlers{
		DB:           db,
		Rooms:        room.NewRepository(db),
		Reservations: reservation.NewRepository(db),
		Folios:       folio.NewRepository(db),
		Approvals:    approval.NewRepository(db),
		Settings:     settings.NewRepository(db),
		Events:       events,
		Log:          log,
		Snapshot:     &desk.GridSnapshot{},
	}
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	deskHandlers := deps.Desk
	if deskHandlers == nil {
		deskHandlers = NewDeskHandlers(deps.DB, deps.Log, deps.Events)
	}
	approvalHandlers := approval.Handlers{Repo: approval.NewRepository(deps.DB)}

	r.Route("/v1", func(r chi.Router) {
		if len(deps.Cfg.DeskAllowedOrigins) > 0 {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.DeskAllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			}))
		}
		r.Use(api.StaffAuth(deps.Cfg.AuthSecret))

		// Status reads; available to any authenticated staff member.
		r.Get("/rooms/status", deskHandlers.Grid)
		r.Get("/rooms/status/live", deskHandlers.LiveGrid)
		r.Get("/rooms/{roomID}/status", deskHandlers.RoomStatus)

		// Mutations require the front-desk capability; finer rules
		// (finance permission, approval tokens) live in the action gate.
		r.Group(func(r chi.Router) {
			r.Use(api.RequireCapability(auth.CapFrontDesk))

			r.Post("/rooms/{roomID}/manual-status", deskHandlers.SetManualStatus)
			r.Post("/rooms/{roomID}/do-not-disturb", deskHandlers.SetDoNotDisturb)

			r.Post("/reservations/{id}/check-in", deskHandlers.CheckIn)
			r.Post("/reservations/{id}/check-out", deskHandlers.CheckOut)
			r.Post("/reservations/{id}/cancel", deskHandlers.Cancel)
			r.Post("/reservations/{id}/extend", deskHandlers.Extend)
			r.Post("/reservations/{id}/transfer", deskHandlers.Transfer)
			r.Post("/reservations/{id}/charges", deskHandlers.AddCharge)
			r.Post("/reservations/{id}/payments", deskHandlers.CollectPayment)
		})

		r.Post("/approvals", approvalHandlers.Issue)
	})

	return r
}
