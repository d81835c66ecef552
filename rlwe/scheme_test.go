package rlwe_test

import (
	"errors"
	"testing"

	"RLWE-Signature/polyring"
	"RLWE-Signature/rlwe"
	"RLWE-Signature/sampling"
)

const (
	testN    = 8
	testQ    = uint64(7681)
	workingD = 2 * testN
)

func newTestScheme(t *testing.T, seed string) *rlwe.Scheme {
	t.Helper()
	src, err := sampling.NewKeyedSource([]byte(seed))
	if err != nil {
		t.Fatalf("NewKeyedSource: %v", err)
	}
	sc, err := rlwe.New(testN, testQ, src, rlwe.Opts{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sc
}

func TestKeyGeneration(t *testing.T) {
	sc := newTestScheme(t, "keygen")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	a, b := sc.PublicKey()
	if a.Dim() != workingD || b.Dim() != workingD {
		t.Fatalf("public key dims %d/%d, want %d", a.Dim(), b.Dim(), workingD)
	}
	if a.Modulus() != testQ || b.Modulus() != testQ {
		t.Fatalf("public key moduli %d/%d, want %d", a.Modulus(), b.Modulus(), testQ)
	}
	// Regeneration overwrites prior material.
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	a2, _ := sc.PublicKey()
	if a.Equal(a2) {
		t.Fatalf("regenerated key matches previous key")
	}
}

func TestSignAndVerify(t *testing.T) {
	sc := newTestScheme(t, "sign-verify")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	message := []byte{0x12, 0x34}
	sig, err := sc.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := sc.Verify(message, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("valid signature rejected")
	}
}

func TestVerifyFailsOnTamperedMessage(t *testing.T) {
	sc := newTestScheme(t, "tamper")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	message := []byte{0x12, 0x34}
	sig, err := sc.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := sc.Verify([]byte{0x12, 0x35}, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("tampered message verified")
	}
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	sc := newTestScheme(t, "forged")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	message := []byte{0x12, 0x34}

	zero, _ := polyring.New(workingD, testQ)
	ok, err := sc.Verify(message, rlwe.Signature{U: zero, V: zero})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("all-zero signature verified")
	}

	arb, _ := polyring.NewFromCoeffs([]uint64{
		17, 4091, 22, 6000, 1234, 7, 3839, 911,
		5555, 12, 700, 4096, 1, 2, 3, 4,
	}, testQ)
	ok, err = sc.Verify(message, rlwe.Signature{U: arb, V: arb})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("arbitrary signature verified")
	}
}

func TestSignaturesUseFreshRandomness(t *testing.T) {
	sc := newTestScheme(t, "fresh")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	message := []byte{0xAB}
	s1, err := sc.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	s2, err := sc.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if s1.U.Equal(s2.U) && s1.V.Equal(s2.V) {
		t.Fatalf("two signatures of the same message are identical")
	}
	for _, s := range []rlwe.Signature{s1, s2} {
		ok, err := sc.Verify(message, s)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if !ok {
			t.Fatalf("fresh signature rejected")
		}
	}
}

func TestVerifyErrorsOnForeignRing(t *testing.T) {
	sc := newTestScheme(t, "foreign")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	other, _ := polyring.New(32, testQ)
	if _, err := sc.Verify([]byte{1}, rlwe.Signature{U: other, V: other}); !errors.Is(err, polyring.ErrRingMismatch) {
		t.Fatalf("foreign-ring signature: err = %v", err)
	}
}

func TestNewValidatesParameters(t *testing.T) {
	src, err := sampling.NewKeyedSource([]byte("params"))
	if err != nil {
		t.Fatalf("NewKeyedSource: %v", err)
	}
	if _, err := rlwe.New(3, testQ, src, rlwe.Opts{}); !errors.Is(err, polyring.ErrInvalidArgument) {
		t.Fatalf("non-power-of-two n accepted: %v", err)
	}
	if _, err := rlwe.New(testN, testQ, nil, rlwe.Opts{}); !errors.Is(err, polyring.ErrInvalidArgument) {
		t.Fatalf("nil source accepted: %v", err)
	}
}

func TestSetKeysRestoresScheme(t *testing.T) {
	signer := newTestScheme(t, "persist")
	if err := signer.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	message := []byte{0x12, 0x34}
	sig, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// Rebuild a scheme from exported key material, as the CLI does.
	restored := newTestScheme(t, "persist-restore")
	a, b, s := signer.ExportKeys()
	if err := restored.SetKeys(a, b, s); err != nil {
		t.Fatalf("SetKeys: %v", err)
	}
	ok, err := restored.Verify(message, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("restored scheme rejected valid signature")
	}

	wrong, _ := polyring.New(workingD, 3329)
	if err := restored.SetKeys(wrong, wrong, wrong); !errors.Is(err, polyring.ErrRingMismatch) {
		t.Fatalf("foreign-ring keys accepted: %v", err)
	}
}
