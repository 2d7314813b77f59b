package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func WriteJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}
