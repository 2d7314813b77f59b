package httpapi

import (
	"net/http"

	"printmitra-be/internal/logger"
	"printmitra-be/internal/message"
	"printmitra-be/internal/middleware"
	"printmitra-be/internal/notification"
	"printmitra-be/internal/order"
	"printmitra-be/internal/shop"
	"printmitra-be/internal/user"
	"printmitra-be/internal/ws"

	"github.com/gorilla/mux"
)

// API bundles the services behind the REST surface. The websocket endpoint
// is mounted on the same router so both share the auth middleware chain.
type API struct {
	Users         user.Service
	Shops         shop.Service
	Orders        order.Service
	Messages      message.Service
	Notifications notification.Repository
	Realtime      *ws.Handler
}

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.AuthMiddleware)

	r.HandleFunc("/api/auth/phone-login", a.phoneLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/email-login", a.emailLogin).Methods(http.MethodPost)

	// Walk-in QR flow: order placement without a prior session.
	r.HandleFunc("/api/orders/anonymous", a.createAnonymousOrder).Methods(http.MethodPost)

	r.HandleFunc("/api/shops", a.listShops).Methods(http.MethodGet)
	r.HandleFunc("/api/shops/{slug}", a.getShop).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth)

	authed.HandleFunc("/api/me", a.me).Methods(http.MethodGet)

	owner := authed.NewRoute().Subrouter()
	owner.Use(middleware.RequireRole(string(user.RoleShopOwner), string(user.RoleAdmin)))
	owner.HandleFunc("/api/my-shop", a.myShop).Methods(http.MethodGet)
	owner.HandleFunc("/api/shops/{id}/toggle-online", a.toggleOnline).Methods(http.MethodPost)
	owner.HandleFunc("/api/shops/{id}/working-hours", a.setWorkingHours).Methods(http.MethodPut)
	owner.HandleFunc("/api/shops/{id}/orders", a.listShopOrders).Methods(http.MethodGet)
	owner.HandleFunc("/api/orders/{id}/notes", a.updateNotes).Methods(http.MethodPatch)
	owner.HandleFunc("/api/orders/{id}/amounts", a.setAmounts).Methods(http.MethodPatch)

	authed.HandleFunc("/api/orders", a.createOrder).Methods(http.MethodPost)
	authed.HandleFunc("/api/orders", a.listMyOrders).Methods(http.MethodGet)
	authed.HandleFunc("/api/orders/{id}", a.getOrder).Methods(http.MethodGet)
	authed.HandleFunc("/api/orders/{id}", a.deleteOrder).Methods(http.MethodDelete)
	authed.HandleFunc("/api/orders/{id}/status", a.updateStatus).Methods(http.MethodPatch)
	authed.HandleFunc("/api/orders/{id}/files", a.addFiles).Methods(http.MethodPost)

	authed.HandleFunc("/api/orders/{id}/messages", a.listMessages).Methods(http.MethodGet)
	authed.HandleFunc("/api/orders/{id}/messages", a.sendMessage).Methods(http.MethodPost)
	authed.HandleFunc("/api/orders/{id}/messages/read", a.markMessagesRead).Methods(http.MethodPost)

	authed.HandleFunc("/api/notifications", a.listNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/api/notifications/read-all", a.markAllNotificationsRead).Methods(http.MethodPost)
	authed.HandleFunc("/api/notifications/{id}/read", a.markNotificationRead).Methods(http.MethodPost)

	// The socket authenticates itself in-band, after the upgrade.
	r.Handle("/ws", a.Realtime)

	return r
}
