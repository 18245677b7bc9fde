package support

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("DNSAUTH_TEST_ENV", "value")
	if got := GetEnv("DNSAUTH_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("GetEnv returned %s, want value", got)
	}

	if got := GetEnv("DNSAUTH_TEST_ENV_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv returned %s, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("DNSAUTH_TEST_ENV_INT", "42")
	if got := GetEnvInt("DNSAUTH_TEST_ENV_INT", 7); got != 42 {
		t.Fatalf("GetEnvInt returned %d, want 42", got)
	}

	t.Setenv("DNSAUTH_TEST_ENV_INT_BAD", "not-a-number")
	if got := GetEnvInt("DNSAUTH_TEST_ENV_INT_BAD", 7); got != 7 {
		t.Fatalf("GetEnvInt with invalid value returned %d, want 7", got)
	}

	if got := GetEnvInt("DNSAUTH_TEST_ENV_INT_MISSING", 7); got != 7 {
		t.Fatalf("GetEnvInt returned %d, want fallback 7", got)
	}
}
