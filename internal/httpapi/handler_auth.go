package httpapi

import (
	"encoding/json"
	"net/http"

	"printmitra-be/internal/user"
	"printmitra-be/internal/utils"
)

type loginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (a *API) phoneLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := a.Users.PhoneLogin(r.Context(), req.Phone)
	if err != nil {
		respondError(w, err)
		return
	}

	setAuthCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

func (a *API) emailLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := a.Users.EmailLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	setAuthCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	u, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
