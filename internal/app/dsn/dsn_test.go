package dsn

import "testing"

func TestFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "")
	if got := FromEnv(); got != "" {
		t.Fatalf("expected empty DSN without DB_HOST, got %q", got)
	}

	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "estimator")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "buildcost")
	t.Setenv("DB_SSLMODE", "")

	want := "host=db port=5432 user=estimator password=secret dbname=buildcost sslmode=disable"
	if got := FromEnv(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
