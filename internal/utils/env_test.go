package utils

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("PREPPLAN_TEST_STR", "value")
	if got := GetEnv("PREPPLAN_TEST_STR", "default", nil); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := GetEnv("PREPPLAN_TEST_STR_MISSING", "default", nil); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("PREPPLAN_TEST_INT", "42")
	if got := GetEnvAsInt("PREPPLAN_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("PREPPLAN_TEST_INT", "not a number")
	if got := GetEnvAsInt("PREPPLAN_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("expected default on parse failure, got %d", got)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("PREPPLAN_TEST_FLOAT", "0.65")
	if got := GetEnvAsFloat("PREPPLAN_TEST_FLOAT", -1, nil); got != 0.65 {
		t.Fatalf("expected 0.65, got %v", got)
	}
	if got := GetEnvAsFloat("PREPPLAN_TEST_FLOAT_MISSING", -1, nil); got != -1 {
		t.Fatalf("expected default, got %v", got)
	}
	t.Setenv("PREPPLAN_TEST_FLOAT", "half")
	if got := GetEnvAsFloat("PREPPLAN_TEST_FLOAT", -1, nil); got != -1 {
		t.Fatalf("expected default on parse failure, got %v", got)
	}
}
