package password

import (
	"strings"
	"testing"
)

// parámetros chicos para que los tests no quemen memoria
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestHashVerify_RoundTrip(t *testing.T) {
	phc, err := Hash(testParams, "S3cure-Pass!")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC prefix: %s", phc)
	}
	if !Verify("S3cure-Pass!", phc) {
		t.Fatal("correct password did not verify")
	}
	if Verify("wrong-password", phc) {
		t.Fatal("wrong password verified")
	}
}

func TestHash_FreshSaltEachCall(t *testing.T) {
	a, err := Hash(testParams, "S3cure-Pass!")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Hash(testParams, "S3cure-Pass!")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical (salt reuse)")
	}
	// ambos verifican igual
	if !Verify("S3cure-Pass!", a) || !Verify("S3cure-Pass!", b) {
		t.Fatal("round trip failed for one of the hashes")
	}
}

func TestHash_EmptyPasswordFails(t *testing.T) {
	if _, err := Hash(testParams, ""); err == nil {
		t.Fatal("Hash(\"\") succeeded, want error")
	}
}

func TestVerify_MalformedNeverPanics(t *testing.T) {
	cases := []string{
		"",
		"not-a-phc",
		"$argon2id$v=19$m=8192,t=1,p=1$salt-only",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$ZGs",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$ZGs",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$ZGs",
		"$argon2id$v=19$m=8192,t=1,p=1$!!badb64!!$ZGs",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!badb64!!",
	}
	for _, phc := range cases {
		if Verify("whatever", phc) {
			t.Fatalf("malformed PHC verified: %q", phc)
		}
	}
}

func TestVerify_ParamsFromPHCNotCaller(t *testing.T) {
	// el verificador usa los parámetros embebidos, no los del caller
	phc, err := Hash(Params{Memory: 16 * 1024, Time: 2, Parallelism: 1, KeyLen: 32}, "S3cure-Pass!")
	if err != nil {
		t.Fatal(err)
	}
	if !Verify("S3cure-Pass!", phc) {
		t.Fatal("hash with non-default params did not verify")
	}
}
