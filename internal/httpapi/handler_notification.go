package httpapi

import (
	"net/http"

	"printmitra-be/internal/notification"
	"printmitra-be/internal/utils"

	"github.com/gorilla/mux"
)

func (a *API) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	notifications, err := a.Notifications.ListUnread(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []*notification.Notification{}
	}
	utils.WriteJSON(w, http.StatusOK, notifications)
}

func (a *API) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := a.Notifications.MarkRead(r.Context(), id, userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if _, err := a.Notifications.MarkAllRead(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
