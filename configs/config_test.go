package config

import (
	"testing"
	"time"
)

func TestTypedHelpersFallBackOnMissingOrMalformedValues(t *testing.T) {
	t.Setenv("PGYM_TEST_INT", "12")
	t.Setenv("PGYM_TEST_BAD_INT", "twelve")
	t.Setenv("PGYM_TEST_BOOL", "yes")
	t.Setenv("PGYM_TEST_DURATION", "90m")
	t.Setenv("PGYM_TEST_BLANK", "  ")

	if got := Int("PGYM_TEST_INT", 1); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := Int("PGYM_TEST_BAD_INT", 4); got != 4 {
		t.Fatalf("expected fallback 4, got %d", got)
	}
	if got := Int("PGYM_TEST_UNSET_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if !Bool("PGYM_TEST_BOOL", false) {
		t.Fatalf("expected yes to parse as true")
	}
	if got := Duration("PGYM_TEST_DURATION", time.Minute); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", got)
	}
	if got := String("PGYM_TEST_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("expected blank value to fall back, got %q", got)
	}
}

func TestLocationFallsBackToLocalForUnknownZone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")
	if loc := Location(); loc != time.Local {
		t.Fatalf("expected time.Local, got %v", loc)
	}

	t.Setenv("APP_TIMEZONE", "UTC")
	if loc := Location(); loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v", loc)
	}
}
