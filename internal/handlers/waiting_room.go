package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/jwt"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/services"
)

// RoomTokener defines only the methods needed by this handler.
type RoomTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RoomWatcher defines the interface that the service must implement.
type RoomWatcher interface {
	Watch(ctx context.Context, tournamentID uuid.UUID) (<-chan services.RoomSnapshot, error)
}

// MembershipChecker reports whether a user has joined a tournament.
type MembershipChecker interface {
	Exists(ctx context.Context, tournamentID, userID uuid.UUID) (bool, error)
}

// RoomErrorResponse represents an error response for the waiting room
// swagger:model RoomErrorResponse
type RoomErrorResponse struct {
	// Error message
	// default: Join the tournament to enter its waiting room
	Error string `json:"error"`
}

// NewWaitingRoomHandler returns an SSE handler streaming waiting-room
// snapshots. Each participant change pushes a fresh snapshot; room
// credentials appear in the stream once the admin has set them. The
// subscription is released when the client disconnects.
// @Summary Watch a waiting room
// @Description Streams waiting-room snapshots over Server-Sent Events. Only joined users may watch.
// @Tags tournaments
// @Produce text/event-stream
// @Param id path string true "Tournament ID"
// @Success 200 {object} services.RoomSnapshot "Snapshot stream"
// @Failure 401 {object} handlers.RoomErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.RoomErrorResponse "Not a participant"
// @Router /tournaments/{id}/room [get]
// @Security BearerAuth
func NewWaitingRoomHandler(svc RoomWatcher, membership MembershipChecker, tokenGetter RoomTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "Unauthorized"})
			return
		}

		tournamentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "tournament id is malformed"})
			return
		}

		joined, err := membership.Exists(ctx, tournamentID, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to check membership", "tournament_id", tournamentID, "user_id", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "Internal server error"})
			return
		}
		if !joined {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "Join the tournament to enter its waiting room"})
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "Streaming unsupported"})
			return
		}

		snapshots, err := svc.Watch(ctx, tournamentID)
		if err != nil {
			logger.Log.Errorw("failed to watch waiting room", "tournament_id", tournamentID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RoomErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				data, err := json.Marshal(snapshot)
				if err != nil {
					logger.Log.Errorw("failed to marshal room snapshot", "tournament_id", tournamentID, "error", err)
					continue
				}
				fmt.Fprintf(w, "event: room\ndata: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
