package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	payloads := []Payload{
		{Email: "ops@example.com", Role: RoleMasterAdmin},
		{Email: "sup@example.com", Role: RoleSuperuser, SuperuserRole: "support"},
		{Email: "ops@example.com", Role: RoleMasterAdmin, Impersonating: "user-123"},
		{Email: "sup@example.com", Role: RoleSuperuser, SuperuserRole: "billing", Impersonating: "user-456"},
	}

	for _, p := range payloads {
		value, err := codec.Encode(p)
		if err != nil {
			t.Fatalf("encode %+v: %v", p, err)
		}
		got := codec.Decode(value)
		if got == nil {
			t.Fatalf("decode returned nil for %+v", p)
		}
		if *got != p {
			t.Fatalf("round trip mismatch: got %+v want %+v", *got, p)
		}
	}
}

func TestDecodeRejectsTamperedValue(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	value, err := codec.Encode(Payload{Email: "ops@example.com", Role: RoleMasterAdmin})
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"truncated":      value[:len(value)-10],
		"flipped":        value[:len(value)-2] + "xx",
		"wrong segments": strings.ReplaceAll(value, ".", "_"),
	}

	for name, tampered := range cases {
		if got := codec.Decode(tampered); got != nil {
			t.Errorf("%s: expected absent, got %+v", name, got)
		}
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	codec := NewCodec("secret-a", time.Hour)
	other := NewCodec("secret-b", time.Hour)

	value, err := codec.Encode(Payload{Email: "ops@example.com", Role: RoleMasterAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if got := other.Decode(value); got != nil {
		t.Fatalf("expected absent for foreign signature, got %+v", got)
	}
}

func TestDecodeRejectsExpiredSession(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)
	value, err := codec.Encode(Payload{Email: "ops@example.com", Role: RoleMasterAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if got := codec.Decode(value); got != nil {
		t.Fatalf("expected absent for expired session, got %+v", got)
	}
}

func TestEncodeRejectsIncompletePayload(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	if _, err := codec.Encode(Payload{Email: "", Role: RoleMasterAdmin}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if _, err := codec.Encode(Payload{Email: "a@b.c"}); err == nil {
		t.Fatal("expected error for missing role")
	}
}

func TestFromRequest(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	p := Payload{Email: "ops@example.com", Role: RoleMasterAdmin}
	value, _ := codec.Encode(p)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := codec.FromRequest(req); got != nil {
		t.Fatalf("expected absent without cookie, got %+v", got)
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	got := codec.FromRequest(req)
	if got == nil || *got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}

func TestSetAndClearCookieAttributes(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	rr := httptest.NewRecorder()
	codec.SetCookie(rr, "value", true)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes: %+v", c)
	}

	rr = httptest.NewRecorder()
	codec.ClearCookie(rr, true)
	c = rr.Result().Cookies()[0]
	if c.MaxAge != -1 || c.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", c)
	}
}
