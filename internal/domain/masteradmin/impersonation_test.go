package masteradmin

import (
	"testing"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/session"
)

func TestStartThenEndRestoresMasterIdentity(t *testing.T) {
	master := &session.Payload{Email: "ops@example.com", Role: session.RoleMasterAdmin}

	active, err := StartImpersonation(master, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if active.Impersonating != "user-1" {
		t.Fatalf("expected impersonation target, got %+v", active)
	}
	if active.Email != master.Email || active.Role != master.Role {
		t.Fatalf("master identity must be preserved: %+v", active)
	}

	restored, err := EndImpersonation(active)
	if err != nil {
		t.Fatal(err)
	}
	if *restored != *master {
		t.Fatalf("end(start(m, t)) != m: got %+v want %+v", *restored, *master)
	}
}

func TestStartWhileImpersonatingSwitchesTarget(t *testing.T) {
	master := &session.Payload{Email: "sup@example.com", Role: session.RoleSuperuser, SuperuserRole: "support"}

	first, err := StartImpersonation(master, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := StartImpersonation(first, "user-2")
	if err != nil {
		t.Fatal(err)
	}
	if second.Impersonating != "user-2" {
		t.Fatalf("expected switched target, got %+v", second)
	}
	if second.Email != master.Email || second.Role != master.Role || second.SuperuserRole != master.SuperuserRole {
		t.Fatalf("master identity lost while switching targets: %+v", second)
	}

	restored, err := EndImpersonation(second)
	if err != nil {
		t.Fatal(err)
	}
	if *restored != *master {
		t.Fatalf("identity not recoverable after switch: %+v", restored)
	}
}

func TestStartRequiresMasterCapability(t *testing.T) {
	tenant := &session.Payload{Email: "user@example.com", Role: session.RoleUser}
	if _, err := StartImpersonation(tenant, "user-1"); err != ErrCannotImpersonate {
		t.Fatalf("expected ErrCannotImpersonate, got %v", err)
	}
	if _, err := StartImpersonation(nil, "user-1"); err != ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestEndFromNormalSessionFails(t *testing.T) {
	master := &session.Payload{Email: "ops@example.com", Role: session.RoleMasterAdmin}
	if _, err := EndImpersonation(master); err != ErrNotImpersonating {
		t.Fatalf("expected ErrNotImpersonating, got %v", err)
	}
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	master := &session.Payload{Email: "ops@example.com", Role: session.RoleMasterAdmin}
	if _, err := StartImpersonation(master, "user-1"); err != nil {
		t.Fatal(err)
	}
	if master.Impersonating != "" {
		t.Fatalf("input payload was mutated: %+v", master)
	}
}
