package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"eventify-cli/model"
)

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("expected POST /auth/login, got %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Email != "ana@example.com" || body.Password != "secret123" {
			t.Errorf("unexpected credentials payload: %+v", body)
		}
		w.Write([]byte(`{"access_token":"token-xyz"}`))
	}))

	session, err := client.Login(context.Background(), " ana@example.com ", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "token-xyz" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestLoginValidation(t *testing.T) {
	client := NewClient(nil, "http://localhost", nil)

	if _, err := client.Login(context.Background(), "", "secret"); err == nil {
		t.Fatal("expected an error for a missing email")
	}
	if _, err := client.Login(context.Background(), "ana@example.com", ""); err == nil {
		t.Fatal("expected an error for a missing password")
	}
}

func TestLoginMissingToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	if _, err := client.Login(context.Background(), "ana@example.com", "secret123"); err == nil {
		t.Fatal("expected an error when the response has no token")
	}
}

func TestRegister(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected /auth/register, got %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		for _, field := range []string{"first_name", "last_name", "email", "password", "phone_number", "city", "address", "gender"} {
			if body[field] == "" {
				t.Errorf("missing field %q in request body", field)
			}
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.Register(context.Background(), model.Registration{
		FirstName:   "Ana",
		LastName:    "Lima",
		Email:       "ana@example.com",
		Password:    "secret123",
		PhoneNumber: "555-0100",
		City:        "Lisbon",
		Address:     "Rua A 1",
		Gender:      "female",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetUserProfile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/user-profile" {
			t.Errorf("expected /auth/user-profile, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":9,"first_name":"Ana","role":"customer"}`))
	}))

	profile, err := client.GetUserProfile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Id != 9 || profile.Role != "customer" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestLogout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/logout" {
			t.Errorf("expected POST /auth/logout, got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
