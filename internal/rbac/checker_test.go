package rbac

import (
	"context"
	"testing"
)

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)

	tests := []struct {
		role string
		perm string
		want bool
	}{
		{"superadmin", "users:list", true},
		{"superadmin", "anything:at:all", true},
		{"administrator", "users:list", true},
		{"administrator", "users:create", false},
		{"administrator", "user:change_password", true},
		{"cmd", "user:change_password", true},
		{"cmd", "users:list", false},
		{"user", "user:change_password", true},
		{"user", "users:list", false},
		{"unknown-role", "user:change_password", false},
	}
	for _, tc := range tests {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(nil)

	if !c.Any("administrator", "users:create", "users:list") {
		t.Error("administrator should match at least users:list")
	}
	if c.Any("user", "users:create", "users:list") {
		t.Error("user should match neither permission")
	}
	if c.Any("user") {
		t.Error("empty permission list should never match")
	}
}

func TestWildcardPatterns(t *testing.T) {
	c := NewChecker(map[string][]string{
		"ops": {"results:*"},
	})
	if !c.Has("ops", "results:delete") {
		t.Error("prefix wildcard should match results:delete")
	}
	if c.Has("ops", "users:list") {
		t.Error("prefix wildcard should not match other prefixes")
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if RoleFromContext(ctx) != "" || SubjectFromContext(ctx) != "" {
		t.Error("empty context should yield empty identity")
	}

	ctx = WithRole(ctx, "cmd")
	ctx = WithSubject(ctx, "42")
	if got := RoleFromContext(ctx); got != "cmd" {
		t.Errorf("role = %q", got)
	}
	if got := SubjectFromContext(ctx); got != "42" {
		t.Errorf("subject = %q", got)
	}
}
