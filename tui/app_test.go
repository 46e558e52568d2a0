package tui

import (
	"testing"

	"eventify-cli/model"
)

func TestIntentIDFromSecret(t *testing.T) {
	if got := intentIDFromSecret("pi_3Abc_secret_xyz"); got != "pi_3Abc" {
		t.Fatalf("expected pi_3Abc, got %q", got)
	}
	// A secret without the marker is passed through untouched.
	if got := intentIDFromSecret("opaque-secret"); got != "opaque-secret" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 45, want: "45m"},
		{minutes: 60, want: "1h"},
		{minutes: 142, want: "2h 22m"},
		{minutes: 180, want: "3h"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.minutes); got != tt.want {
			t.Fatalf("%d minutes: expected %q, got %q", tt.minutes, tt.want, got)
		}
	}
}

func TestFormatDateLabel(t *testing.T) {
	if got := formatDateLabel("2026-09-01", "2026-09-01"); got != "Today" {
		t.Fatalf("expected Today, got %q", got)
	}
	if got := formatDateLabel("2026-09-05", "2026-09-01"); got != "Sat, Sep 5" {
		t.Fatalf("expected formatted date, got %q", got)
	}
	if got := formatDateLabel("bogus", "2026-09-01"); got != "bogus" {
		t.Fatalf("unparseable dates pass through, got %q", got)
	}
}

func TestBuildDateItemsNeverOffersThePast(t *testing.T) {
	today := "2026-09-01"
	items := buildDateItems(today)

	if len(items) != datePickerDays {
		t.Fatalf("expected %d dates, got %d", datePickerDays, len(items))
	}
	first, ok := items[0].(dateItem)
	if !ok || first.date != today || first.label != "Today" {
		t.Fatalf("expected today first, got %+v", items[0])
	}
	second := items[1].(dateItem)
	if second.label != "Tomorrow" || second.date != "2026-09-02" {
		t.Fatalf("expected tomorrow second, got %+v", second)
	}
	for _, item := range items {
		if item.(dateItem).date < today {
			t.Fatalf("picker offered a past date: %+v", item)
		}
	}
}

func TestGenreIndexFor(t *testing.T) {
	genres := []model.Genre{{Id: 3, Name: "Action"}, {Id: 9, Name: "Drama"}}

	if got := genreIndexFor(genres, "all"); got != 0 {
		t.Fatalf("expected the All Genres entry, got %d", got)
	}
	if got := genreIndexFor(genres, "9"); got != 2 {
		t.Fatalf("expected index 2 (after the All entry), got %d", got)
	}
	if got := genreIndexFor(genres, "404"); got != 0 {
		t.Fatalf("unknown genres fall back to All, got %d", got)
	}
}

func TestDateIndexFor(t *testing.T) {
	if got := dateIndexFor("2026-09-01", "2026-09-01"); got != 0 {
		t.Fatalf("expected 0 for today, got %d", got)
	}
	if got := dateIndexFor("2026-09-01", "2026-09-04"); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := dateIndexFor("2026-09-01", "2027-01-01"); got != 0 {
		t.Fatalf("dates outside the picker fall back to today, got %d", got)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := model.Registration{
		FirstName:   "Ana",
		LastName:    "Lima",
		Email:       "ana@example.com",
		Password:    "secret123",
		PhoneNumber: "555-0100",
		City:        "Lisbon",
		Address:     "Rua A 1",
		Gender:      "female",
	}
	if errs := validateRegistration(valid); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	invalid := valid
	invalid.Email = "not-an-email"
	invalid.Password = "short"
	invalid.City = ""

	errs := validateRegistration(invalid)
	if errs["Email"] == "" {
		t.Fatal("expected an email error")
	}
	if errs["Password"] == "" {
		t.Fatal("expected a password length error")
	}
	if errs["City"] == "" {
		t.Fatal("expected a required-field error for city")
	}
	if len(errs) != 3 {
		t.Fatalf("expected exactly 3 errors, got %v", errs)
	}
}

func TestSignedInLabel(t *testing.T) {
	m := appModel{}
	if got := m.signedInLabel(); got != "signed in" {
		t.Fatalf("expected plain label without a role, got %q", got)
	}
	m.role = "customer"
	if got := m.signedInLabel(); got != "signed in as customer" {
		t.Fatalf("expected role in label, got %q", got)
	}
}

func TestRecoverStateFrom(t *testing.T) {
	tests := []struct {
		from appState
		want appState
	}{
		{from: stateLoadingMovies, want: stateBrowse},
		{from: stateLoadingMovie, want: stateBrowse},
		{from: stateLoadingSeats, want: stateTicketCount},
		{from: stateLoadingPayment, want: stateSelectSeats},
		{from: stateConfirming, want: stateSelectSeats},
		{from: stateBrowse, want: stateBrowse},
	}
	for _, tt := range tests {
		if got := recoverStateFrom(tt.from); got != tt.want {
			t.Fatalf("recoverStateFrom(%d): expected %d, got %d", tt.from, tt.want, got)
		}
	}
}
