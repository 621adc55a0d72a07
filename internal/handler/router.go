package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/items-api/backend/internal/handler/events"
	"github.com/zhouzirui/items-api/backend/internal/handler/items"
	middlewarePkg "github.com/zhouzirui/items-api/backend/internal/middleware"
	eventService "github.com/zhouzirui/items-api/backend/internal/service/events"
	"github.com/zhouzirui/items-api/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. hub may be nil, in which
// case the change feed routes are not registered.
func NewRouter(store items.Store, hub *eventService.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Not Found")
	})

	// Register item routes
	items.New(store).RegisterRoutes(r)

	// Change feed over SSE and WebSocket
	if hub != nil {
		events.New(hub).RegisterRoutes(r)
	}

	return r
}
