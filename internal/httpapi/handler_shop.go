package httpapi

import (
	"io"
	"net/http"

	"printmitra-be/internal/user"
	"printmitra-be/internal/utils"

	"github.com/gorilla/mux"
)

func (a *API) listShops(w http.ResponseWriter, r *http.Request) {
	shops, err := a.Shops.ListActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, shops)
}

func (a *API) getShop(w http.ResponseWriter, r *http.Request) {
	s, err := a.Shops.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (a *API) myShop(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s, err := a.Shops.GetByOwnerID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (a *API) toggleOnline(w http.ResponseWriter, r *http.Request) {
	shopID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid shop id", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	s, err := a.Shops.ToggleOnline(r.Context(), shopID, userID, role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (a *API) setWorkingHours(w http.ResponseWriter, r *http.Request) {
	shopID, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteJSONError(w, "invalid shop id", http.StatusBadRequest)
		return
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role := user.Role(utils.GetUserRoleFromContext(r.Context()))

	s, err := a.Shops.SetWorkingHours(r.Context(), shopID, userID, role, raw)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}
