package main

import (
	"encoding/json"
	"net/http"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type apiError struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func TokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		writeErrors(w, http.StatusBadRequest, apiError{Code: 38187, Title: "Invalid parameters", Detail: "grant_type must be client_credentials"})
		return
	}
	if r.PostForm.Get("client_id") == "" || r.PostForm.Get("client_secret") == "" {
		writeErrors(w, http.StatusUnauthorized, apiError{Code: 38190, Title: "Invalid client", Detail: "Client credentials are invalid"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{AccessToken: mockToken, TokenType: "Bearer", ExpiresIn: 1799})
}

func requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+mockToken {
			writeErrors(w, http.StatusUnauthorized, apiError{Code: 38191, Title: "Invalid HTTP header", Detail: "Missing or invalid format for mandatory Authorization header"})
			return
		}
		next(w, r)
	}
}

func writeErrors(w http.ResponseWriter, status int, errs ...apiError) {
	for i := range errs {
		errs[i].Status = status
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string][]apiError{"errors": errs})
}
