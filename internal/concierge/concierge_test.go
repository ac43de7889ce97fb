package concierge_test

import (
	"context"
	"strings"
	"testing"

	"lumiere/internal/concierge"
	"lumiere/internal/domain"
)

func TestOfflineFallback(t *testing.T) {
	c, err := concierge.New(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if c.Online() {
		t.Fatal("no key configured, adapter must be offline")
	}

	// No credential means the canned reply, verbatim, with no network call.
	got := c.Ask(context.Background(), "Do you have a villa in Malibu?", nil)
	if got != concierge.OfflineReply {
		t.Fatalf("want offline reply, got %q", got)
	}
}

func TestSystemInstruction(t *testing.T) {
	props := []domain.Property{
		{
			Title: "Villa Azure", Location: "Malibu", Price: 8400000,
			Type: "VILLA", Status: "FOR_SALE",
			Features: `["Pool","Beach","Cellar","Theater","Helipad","Spa"]`,
		},
	}
	sys := concierge.SystemInstruction(props)

	for _, want := range []string{"Villa Azure", "Malibu", "8400000", "FOR_SALE"} {
		if !strings.Contains(sys, want) {
			t.Fatalf("system instruction missing %q", want)
		}
	}
	// Feature list is capped at four entries.
	if strings.Contains(sys, "Helipad") || strings.Contains(sys, "Spa") {
		t.Fatal("features beyond the first four must be dropped")
	}
	// Persona rules travel with every request.
	for _, rule := range []string{"spell prices out in words", "100 words", "exact property title"} {
		if !strings.Contains(sys, rule) {
			t.Fatalf("persona rule missing: %q", rule)
		}
	}
}
