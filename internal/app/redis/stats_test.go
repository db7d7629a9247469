package redis

import (
	"strings"
	"testing"
)

func TestStatsKeysAreScopedByTenantAndGeneration(t *testing.T) {
	a := getStatsKey(1, 0, "p0:e0:m0:r0")
	b := getStatsKey(2, 0, "p0:e0:m0:r0")
	c := getStatsKey(1, 1, "p0:e0:m0:r0")

	if a == b {
		t.Errorf("tenants share a key: %s", a)
	}
	if a == c {
		t.Errorf("generations share a key: %s", a)
	}
	if !strings.HasPrefix(a, servicePrefix) {
		t.Errorf("key %s has no service prefix", a)
	}
	if getStatsGenerationKey(1) == getStatsGenerationKey(2) {
		t.Error("generation key is not tenant scoped")
	}
}

func TestJWTKey(t *testing.T) {
	if got := getJWTKey("abc"); got != "buildcost.jwt.abc" {
		t.Errorf("getJWTKey = %s", got)
	}
}
