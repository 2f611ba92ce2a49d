package desk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"frontdesk/internal/api"
	"frontdesk/internal/approval"
	"frontdesk/internal/auth"
	"frontdesk/internal/occupancy"
	"frontdesk/internal/reservation"
	"frontdesk/internal/room"
	"frontdesk/internal/settings"
)

// Every mutating endpoint follows the same shape: resolve the room through
// the shared facade, ask the gate to authorize the action, run the
// optimistic update, publish a room-change event. The resolver is never
// bypassed and never duplicated here.

type actionEnv struct {
	res     *reservation.Reservation
	cfg     settings.Settings
	result  occupancy.LifecycleResult
	gc      occupancy.GateContext
	now     time.Time
	refDate time.Time
	token   string
}

type failure struct {
	status  int
	code    string
	message string
}

func (h Handlers) loadActionEnv(ctx context.Context, reservationID, token, scope string) (*actionEnv, *failure) {
	res, err := h.Reservations.Get(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			return nil, &failure{http.StatusNotFound, "NOT_FOUND", "reservation not found"}
		}
		return nil, &failure{http.StatusInternalServerError, "INTERNAL", "internal error"}
	}
	rm, err := h.Rooms.Get(ctx, res.RoomID)
	if err != nil {
		return nil, &failure{http.StatusInternalServerError, "INTERNAL", "internal error"}
	}

	now := time.Now()
	refDate := now
	// A not-yet-started reservation (cancellation ahead of arrival) is
	// evaluated in the context of its own arrival date.
	if res.Status == reservation.StatusReserved && res.CheckInDate.After(now) {
		refDate = res.CheckInDate
	}

	siblings, err := h.Reservations.ForRoomAsOf(ctx, res.RoomID, refDate)
	if err != nil {
		return nil, &failure{http.StatusInternalServerError, "INTERNAL", "internal error"}
	}

	cfg := h.loadSettings(ctx)
	sess := api.SessionFromContext(ctx)

	balance, err := h.Folios.OutstandingBalance(ctx, res.ID)
	if err != nil {
		return nil, &failure{http.StatusInternalServerError, "INTERNAL", "internal error"}
	}
	hasToken := false
	if token != "" {
		hasToken, err = h.Approvals.Present(ctx, token, scope)
		if err != nil {
			return nil, &failure{http.StatusInternalServerError, "INTERNAL", "internal error"}
		}
	}

	gc := occupancy.GateContext{
		Balance:          balance,
		Policy:           cfg.Policy,
		HasApprovalToken: hasToken,
		CanManageFinance: sess.Can(auth.CapFinanceManage),
	}
	resolver := occupancy.NewResolver(cfg.Hours, h.logger())
	result := resolver.ResolveRoomStatus(*rm, siblings, refDate, now, gc)

	if result.Active == nil || result.Active.ID != res.ID {
		return nil, &failure{http.StatusConflict, "NOT_ACTIVE", "reservation is not governing its room right now"}
	}

	return &actionEnv{
		res:     res,
		cfg:     cfg,
		result:  result,
		gc:      gc,
		now:     now,
		refDate: refDate,
		token:   token,
	}, nil
}

func (h Handlers) authorize(w http.ResponseWriter, action occupancy.Action, env *actionEnv) bool {
	err := occupancy.Authorize(action, env.result.State, env.gc)
	switch {
	case errors.Is(err, occupancy.ErrApprovalRequired):
		api.WriteError(w, http.StatusForbidden, "APPROVAL_REQUIRED", "manager approval token required")
		return false
	case errors.Is(err, occupancy.ErrActionNotAllowed):
		api.WriteError(w, http.StatusConflict, "ACTION_NOT_ALLOWED", "action not allowed in state "+string(env.result.State))
		return false
	case err != nil:
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return false
	}
	return true
}

func (h Handlers) finish(w http.ResponseWriter, r *http.Request, env *actionEnv, err error, body map[string]any) {
	if err != nil {
		if errors.Is(err, reservation.ErrStatusConflict) {
			api.WriteError(w, http.StatusConflict, "CONFLICT", "reservation changed concurrently, refresh and retry")
			return
		}
		h.logger().Error("desk action failed", zap.String("reservation_id", env.res.ID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	h.Events.RoomChanged(r.Context(), env.res.RoomID)
	api.WriteJSON(w, http.StatusOK, body)
}

// redeemIfPresented consumes a presented approval token; tokens are single
// use whether or not the rule that demanded them was active.
func (h Handlers) redeemIfPresented(ctx context.Context, env *actionEnv, scope string) {
	if env.token == "" || !env.gc.HasApprovalToken {
		return
	}
	if err := h.Approvals.Redeem(ctx, env.token, scope); err != nil {
		h.logger().Warn("approval token redeem failed", zap.Error(err))
	}
}

type checkInRequest struct {
	ApprovalToken string `json:"approvalToken"`
}

// CheckIn handles POST /v1/reservations/{id}/check-in. Before opening hours
// the same endpoint performs an early check-in, which the gate only clears
// with a manager-approval token.
func (h Handlers) CheckIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req checkInRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	env, fail := h.loadActionEnv(r.Context(), id, req.ApprovalToken, approval.ScopeEarlyCheckIn)
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}

	action := occupancy.ActionCheckIn
	if env.result.State == occupancy.StateArrivingEarly {
		action = occupancy.ActionEarlyCheckIn
	}
	if !h.authorize(w, action, env) {
		return
	}
	if action == occupancy.ActionEarlyCheckIn {
		h.redeemIfPresented(r.Context(), env, approval.ScopeEarlyCheckIn)
	}

	err := h.Reservations.CheckIn(r.Context(), env.res.ID, env.now)
	h.finish(w, r, env, err, map[string]any{
		"reservationId": env.res.ID,
		"status":        string(reservation.StatusCheckedIn),
		"earlyCheckIn":  action == occupancy.ActionEarlyCheckIn,
	})
}

type checkOutRequest struct {
	Force         bool   `json:"force"`
	ApprovalToken string `json:"approvalToken"`
}

// CheckOut handles POST /v1/reservations/{id}/check-out. force=true selects
// the finance-gated force-checkout path for guests leaving with debt.
func (h Handlers) CheckOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req checkOutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	env, fail := h.loadActionEnv(r.Context(), id, req.ApprovalToken, approval.ScopeCheckout)
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}

	action := occupancy.ActionCheckout
	if req.Force {
		action = occupancy.ActionForceCheckout
	}
	if !h.authorize(w, action, env) {
		return
	}
	h.redeemIfPresented(r.Context(), env, approval.ScopeCheckout)

	err := h.Reservations.CheckOut(r.Context(), env.res.ID, env.now)
	h.finish(w, r, env, err, map[string]any{
		"reservationId": env.res.ID,
		"status":        string(reservation.StatusCompleted),
		"forced":        req.Force,
		"balance":       env.gc.Balance.String(),
	})
}

// Cancel handles POST /v1/reservations/{id}/cancel, valid before check-in.
func (h Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	env, fail := h.loadActionEnv(r.Context(), id, "", "")
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}
	if !h.authorize(w, occupancy.ActionCancel, env) {
		return
	}

	err := h.Reservations.Cancel(r.Context(), env.res.ID)
	h.finish(w, r, env, err, map[string]any{
		"reservationId": env.res.ID,
		"status":        string(reservation.StatusCancelled),
	})
}

type extendRequest struct {
	CheckOutDate string `json:"checkOutDate"`
}

// Extend handles POST /v1/reservations/{id}/extend, pushing the booked
// checkout date for an in-house or overstaying guest.
func (h Handlers) Extend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req extendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	newDate, err := time.Parse("2006-01-02", req.CheckOutDate)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid checkOutDate, want YYYY-MM-DD")
		return
	}

	env, fail := h.loadActionEnv(r.Context(), id, "", "")
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}
	if !h.authorize(w, occupancy.ActionExtendStay, env) {
		return
	}
	if !newDate.After(env.res.CheckOutDate) && env.result.State != occupancy.StateOverstay {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "new checkout date must extend the stay")
		return
	}

	err = h.Reservations.Extend(r.Context(), env.res.ID, newDate)
	h.finish(w, r, env, err, map[string]any{
		"reservationId": env.res.ID,
		"checkOutDate":  newDate.Format("2006-01-02"),
	})
}

type transferRequest struct {
	RoomID string `json:"roomId"`
}

// Transfer handles POST /v1/reservations/{id}/transfer. The target room is
// resolved through the same facade and must be vacant.
func (h Handlers) Transfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing roomId")
		return
	}

	env, fail := h.loadActionEnv(r.Context(), id, "", "")
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}
	if !h.authorize(w, occupancy.ActionTransferRoom, env) {
		return
	}

	target, err := h.Rooms.Get(r.Context(), req.RoomID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "target room not found")
		return
	}
	targetRes, err := h.Reservations.ForRoomAsOf(r.Context(), target.ID, env.refDate)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	resolver := occupancy.NewResolver(env.cfg.Hours, h.logger())
	targetStatus := resolver.ResolveRoomStatus(*target, targetRes, env.refDate, env.now, occupancy.GateContext{Policy: env.cfg.Policy})
	if targetStatus.State != occupancy.StateVacant {
		api.WriteError(w, http.StatusConflict, "ROOM_UNAVAILABLE", "target room is not vacant")
		return
	}

	err = h.Reservations.TransferRoom(r.Context(), env.res.ID, target.ID)
	if err == nil {
		// Both rooms change occupancy.
		h.Events.RoomChanged(r.Context(), target.ID)
	}
	h.finish(w, r, env, err, map[string]any{
		"reservationId": env.res.ID,
		"roomId":        target.ID,
	})
}

type chargeRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// AddCharge handles POST /v1/reservations/{id}/charges. During an overstay
// the default description frames the charge as an overstay fee.
func (h Handlers) AddCharge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req chargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "amount must be a positive decimal")
		return
	}

	env, fail := h.loadActionEnv(r.Context(), id, "", "")
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}
	if !h.authorize(w, occupancy.ActionAddCharge, env) {
		return
	}

	desc := req.Description
	if desc == "" && env.result.State == occupancy.StateOverstay {
		desc = "Overstay fee"
	}

	entryID, err := h.Folios.AddCharge(r.Context(), env.res.ID, amount, desc)
	h.finish(w, r, env, err, map[string]any{
		"entryId":       entryID,
		"reservationId": env.res.ID,
		"amount":        amount.String(),
		"description":   desc,
	})
}

type paymentRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// CollectPayment handles POST /v1/reservations/{id}/payments.
func (h Handlers) CollectPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "amount must be a positive decimal")
		return
	}

	env, fail := h.loadActionEnv(r.Context(), id, "", "")
	if fail != nil {
		api.WriteError(w, fail.status, fail.code, fail.message)
		return
	}
	if !h.authorize(w, occupancy.ActionCollectPayment, env) {
		return
	}

	entryID, err := h.Folios.RecordPayment(r.Context(), env.res.ID, amount, req.Description)
	h.finish(w, r, env, err, map[string]any{
		"entryId":       entryID,
		"reservationId": env.res.ID,
		"amount":        amount.String(),
	})
}

type manualStatusRequest struct {
	Status string `json:"status"`
}

// SetManualStatus handles POST /v1/rooms/{roomID}/manual-status.
func (h Handlers) SetManualStatus(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	var req manualStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	status, err := room.ParseManualStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	if err := h.Rooms.SetManualStatus(r.Context(), roomID, status); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "room not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	h.Events.RoomChanged(r.Context(), roomID)
	api.WriteJSON(w, http.StatusOK, map[string]any{"roomId": roomID, "manualStatus": string(status)})
}

type dndRequest struct {
	DoNotDisturb bool `json:"doNotDisturb"`
}

// SetDoNotDisturb handles POST /v1/rooms/{roomID}/do-not-disturb.
func (h Handlers) SetDoNotDisturb(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	var req dndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}

	if err := h.Rooms.SetDoNotDisturb(r.Context(), roomID, req.DoNotDisturb); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "room not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	h.Events.RoomChanged(r.Context(), roomID)
	api.WriteJSON(w, http.StatusOK, map[string]any{"roomId": roomID, "doNotDisturb": req.DoNotDisturb})
}
