package jwt_test

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
)

const testSecret = "test-secret-please-rotate"

func newTestIssuer(t *testing.T, ttl time.Duration) *jwtx.Issuer {
	t.Helper()
	iss, err := jwtx.NewIssuer("dotcart", "dotcart-api", testSecret, ttl)
	if err != nil {
		t.Fatal(err)
	}
	return iss
}

func TestNewIssuer_EmptySecretFailsFast(t *testing.T) {
	if _, err := jwtx.NewIssuer("dotcart", "dotcart-api", "", time.Hour); err != jwtx.ErrEmptySecret {
		t.Fatalf("got %v, want ErrEmptySecret", err)
	}
}

func TestIssue_ClaimsAndExpiry(t *testing.T) {
	iss := newTestIssuer(t, time.Hour)

	signed, exp, err := iss.Issue(42, "ana@example.com", "203.0.113.7")
	if err != nil {
		t.Fatal(err)
	}
	if d := time.Until(exp); d < 59*time.Minute || d > 61*time.Minute {
		t.Fatalf("expiry %v from now, want ~1h", d)
	}

	claims, err := iss.Parse(signed)
	if err != nil {
		t.Fatal(err)
	}
	if got := jwtx.ClaimString(claims, "sub"); got != "42" {
		t.Fatalf("sub = %q, want %q", got, "42")
	}
	if got := jwtx.ClaimString(claims, "email"); got != "ana@example.com" {
		t.Fatalf("email = %q", got)
	}
	if got := jwtx.ClaimString(claims, jwtx.ClaimIPAddress); got != "203.0.113.7" {
		t.Fatalf("IPAddress = %q, want bound address", got)
	}
}

func TestIssue_BindsUnknownAddress(t *testing.T) {
	iss := newTestIssuer(t, time.Hour)
	signed, _, err := iss.Issue(1, "b@example.com", "Unknown")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := iss.Parse(signed)
	if err != nil {
		t.Fatal(err)
	}
	// "Unknown" se emite literal; sólo matchea con otro cliente irresoluble
	if got := jwtx.ClaimString(claims, jwtx.ClaimIPAddress); got != "Unknown" {
		t.Fatalf("IPAddress = %q, want Unknown", got)
	}
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	iss := newTestIssuer(t, time.Hour)
	signed, _, err := iss.Issue(1, "a@example.com", "10.0.0.1")
	if err != nil {
		t.Fatal(err)
	}

	other, err := jwtx.NewIssuer("dotcart", "dotcart-api", "another-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Parse(signed); err == nil {
		t.Fatal("token signed with different secret parsed")
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	iss := newTestIssuer(t, time.Millisecond)
	signed, _, err := iss.Issue(1, "a@example.com", "10.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(1100 * time.Millisecond) // exp tiene resolución de segundos
	if _, err := iss.Parse(signed); err == nil {
		t.Fatal("expired token parsed")
	}
}

func TestParse_RejectsNonHMAC(t *testing.T) {
	iss := newTestIssuer(t, time.Hour)
	// token alg=none con las mismas claims
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, jwtv5.MapClaims{
		"iss": "dotcart", "aud": "dotcart-api", "sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tk.SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(raw); err == nil {
		t.Fatal("alg=none token parsed")
	}
}

func TestPeekIPAddress_NoSignatureCheck(t *testing.T) {
	iss := newTestIssuer(t, time.Hour)
	signed, _, err := iss.Issue(7, "c@example.com", "198.51.100.9")
	if err != nil {
		t.Fatal(err)
	}

	got, err := jwtx.PeekIPAddress(signed)
	if err != nil {
		t.Fatal(err)
	}
	if got != "198.51.100.9" {
		t.Fatalf("peek = %q", got)
	}

	// el peek no valida firma: un token firmado con OTRO secret también decodea
	other, _ := jwtx.NewIssuer("dotcart", "dotcart-api", "another-secret", time.Hour)
	foreign, _, err := other.Issue(7, "c@example.com", "192.0.2.1")
	if err != nil {
		t.Fatal(err)
	}
	if got, err := jwtx.PeekIPAddress(foreign); err != nil || got != "192.0.2.1" {
		t.Fatalf("peek foreign = %q, %v", got, err)
	}
}

func TestPeekIPAddress_GarbageFails(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := jwtx.PeekIPAddress(raw); err == nil {
			t.Fatalf("peek(%q) succeeded", raw)
		}
	}
}

func TestPeekIPAddress_MissingClaimIsEmpty(t *testing.T) {
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS512, jwtv5.MapClaims{
		"sub": "1", "exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	got, err := jwtx.PeekIPAddress(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("peek = %q, want empty for missing claim", got)
	}
}
