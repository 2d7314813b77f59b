package httpapi

import (
	"encoding/json"
	"net/http"

	"printmitra-be/internal/message"
	"printmitra-be/internal/order"
	"printmitra-be/internal/user"
	"printmitra-be/internal/utils"

	"github.com/gorilla/mux"
)

func (a *API) listMessages(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	messages, err := a.Messages.ListByOrder(r.Context(), orderID, userID, role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, messages)
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req struct {
		Body  string       `json:"body"`
		Files []order.File `json:"files"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	m, err := a.Messages.Send(r.Context(), message.SendInput{
		OrderID:  orderID,
		SenderID: userID,
		Role:     role,
		Body:     req.Body,
		Files:    req.Files,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, m)
}

func (a *API) markMessagesRead(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	if err := a.Messages.MarkRead(r.Context(), orderID, userID, role); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
