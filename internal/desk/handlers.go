package desk

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"frontdesk/internal/api"
	"frontdesk/internal/approval"
	"frontdesk/internal/auth"
	"frontdesk/internal/folio"
	"frontdesk/internal/occupancy"
	"frontdesk/internal/refresh"
	"frontdesk/internal/reservation"
	"frontdesk/internal/room"
	"frontdesk/internal/settings"
)

// Handlers are the front-desk consumers of the occupancy resolver. Both the
// grid and the detail drawer go through occupancy.Resolver; neither carries
// its own copy of the filter/priority/classification pipeline.
type Handlers struct {
	DB           *pgxpool.Pool
	Rooms        *room.Repository
	Reservations *reservation.Repository
	Folios       *folio.Repository
	Approvals    *approval.Repository
	Settings     *settings.Repository
	Events       *refresh.Publisher
	Log          *zap.Logger

	Snapshot *GridSnapshot
}

func (h Handlers) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// loadSettings degrades to defaults on failure: a status screen must render
// even when the settings row is unreadable.
func (h Handlers) loadSettings(ctx context.Context) settings.Settings {
	cfg, err := h.Settings.Load(ctx)
	if err != nil {
		h.logger().Warn("settings load failed, using defaults", zap.Error(err))
		return settings.Defaults()
	}
	return cfg
}

func referenceDate(r *http.Request, now time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return now, true
	}
	d, err := time.ParseInLocation("2006-01-02", raw, now.Location())
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// GridItem is one cell of the summary grid.
type GridItem struct {
	RoomID        string `json:"roomId"`
	Number        string `json:"number"`
	Floor         int    `json:"floor"`
	State         string `json:"state"`
	DisplayStatus string `json:"displayStatus"`
	StatusMessage string `json:"statusMessage"`
	DoNotDisturb  bool   `json:"doNotDisturb"`
	ReservationID string `json:"reservationId,omitempty"`
	GuestID       string `json:"guestId,omitempty"`
}

func (h Handlers) buildGrid(ctx context.Context, refDate, now time.Time) ([]GridItem, error) {
	cfg := h.loadSettings(ctx)
	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rooms))
	for _, rm := range rooms {
		ids = append(ids, rm.ID)
	}
	byRoom, err := h.Reservations.ForRoomsAsOf(ctx, ids, refDate)
	if err != nil {
		return nil, err
	}

	resolver := occupancy.NewResolver(cfg.Hours, h.logger())
	items := make([]GridItem, 0, len(rooms))
	for _, rm := range rooms {
		// The grid renders state only; caller-specific action sets belong
		// to the detail view, so the gate context carries just the policy.
		result := resolver.ResolveRoomStatus(rm, byRoom[rm.ID], refDate, now, occupancy.GateContext{Policy: cfg.Policy})
		item := GridItem{
			RoomID:        rm.ID,
			Number:        rm.Number,
			Floor:         rm.Floor,
			State:         string(result.State),
			DisplayStatus: string(result.DisplayStatus),
			StatusMessage: result.StatusMessage,
			DoNotDisturb:  rm.DoNotDisturb,
		}
		if result.Active != nil {
			item.ReservationID = result.Active.ID
			item.GuestID = result.Active.GuestID
		}
		items = append(items, item)
	}
	return items, nil
}

// Grid handles GET /v1/rooms/status. Status is recomputed on every read;
// there is no cached state to drift.
func (h Handlers) Grid(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	refDate, ok := referenceDate(r, now)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid date, want YYYY-MM-DD")
		return
	}

	items, err := h.buildGrid(r.Context(), refDate, now)
	if err != nil {
		h.logger().Error("grid build failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"date":  refDate.Format("2006-01-02"),
		"items": items,
	})
}

// RoomStatus handles GET /v1/rooms/{roomID}/status: the detail drawer. Same
// resolver as the grid, plus balance, caller-specific actions and the
// same-day incoming reservation.
func (h Handlers) RoomStatus(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if roomID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing roomID")
		return
	}
	now := time.Now()
	refDate, ok := referenceDate(r, now)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid date, want YYYY-MM-DD")
		return
	}

	rm, err := h.Rooms.Get(r.Context(), roomID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "room not found")
		return
	}
	reservations, err := h.Reservations.ForRoomAsOf(r.Context(), roomID, refDate)
	if err != nil {
		h.logger().Error("reservation fetch failed", zap.String("room_id", roomID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	cfg := h.loadSettings(r.Context())
	resolver := occupancy.NewResolver(cfg.Hours, h.logger())
	sess := api.SessionFromContext(r.Context())

	gc := occupancy.GateContext{
		Policy:           cfg.Policy,
		CanManageFinance: sess.Can(auth.CapFinanceManage),
	}

	// First pass finds the active reservation so its balance can feed the
	// gate; the resolver is pure and cheap, recomputing is the design.
	probe := resolver.ResolveRoomStatus(*rm, reservations, refDate, now, gc)
	balance := decimal.Zero
	if probe.Active != nil {
		balance, err = h.Folios.OutstandingBalance(r.Context(), probe.Active.ID)
		if err != nil {
			h.logger().Error("balance fetch failed", zap.String("reservation_id", probe.Active.ID), zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			return
		}
	}
	gc.Balance = balance
	result := resolver.ResolveRoomStatus(*rm, reservations, refDate, now, gc)
	incoming := resolver.ResolveIncomingReservation(reservations, refDate)

	resp := map[string]any{
		"room": map[string]any{
			"id":           rm.ID,
			"number":       rm.Number,
			"floor":        rm.Floor,
			"manualStatus": string(rm.ManualStatus),
			"doNotDisturb": rm.DoNotDisturb,
		},
		"date":           refDate.Format("2006-01-02"),
		"state":          string(result.State),
		"displayStatus":  string(result.DisplayStatus),
		"statusMessage":  result.StatusMessage,
		"allowedActions": result.AllowedActions,
		"balance":        balance.String(),
	}
	if result.Active != nil {
		resp["activeReservation"] = result.Active
	}
	if incoming != nil {
		resp["incomingReservation"] = incoming
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// GridSnapshot is the push-consumer cache: the refresh listener recomputes
// it after (debounced) room-change events so live dashboards read without
// touching the database.
type GridSnapshot struct {
	mu         sync.RWMutex
	items      []GridItem
	computedAt time.Time
}

// Recompute rebuilds the snapshot; wired as the refresh.Debouncer callback.
func (h Handlers) Recompute(ctx context.Context) {
	now := time.Now()
	items, err := h.buildGrid(ctx, now, now)
	if err != nil {
		h.logger().Error("snapshot recompute failed", zap.Error(err))
		return
	}
	h.Snapshot.mu.Lock()
	h.Snapshot.items = items
	h.Snapshot.computedAt = now
	h.Snapshot.mu.Unlock()
}

// LiveGrid handles GET /v1/rooms/status/live, serving the cached snapshot
// and falling back to a fresh computation before the first event arrives.
func (h Handlers) LiveGrid(w http.ResponseWriter, r *http.Request) {
	h.Snapshot.mu.RLock()
	items, at := h.Snapshot.items, h.Snapshot.computedAt
	h.Snapshot.mu.RUnlock()

	if items == nil {
		h.Grid(w, r)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"computedAt": at,
		"items":      items,
	})
}
