package rlwe_test

import (
	"testing"

	"RLWE-Signature/polyring"
	"RLWE-Signature/rlwe"
)

func TestBlindSignRoundTrip(t *testing.T) {
	sc := newTestScheme(t, "blind")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	secret := []byte("the requester's secret")

	blinded, blindingFactor, err := sc.ComputeBlindedMessage(secret)
	if err != nil {
		t.Fatalf("ComputeBlindedMessage: %v", err)
	}
	blindSig, err := sc.BlindSign(blinded)
	if err != nil {
		t.Fatalf("BlindSign: %v", err)
	}
	_, b := sc.PublicKey()
	sig, err := rlwe.ComputeSignature(blindSig, blindingFactor, b)
	if err != nil {
		t.Fatalf("ComputeSignature: %v", err)
	}

	ok, err := sc.VerifyBlind(secret, sig)
	if err != nil {
		t.Fatalf("VerifyBlind: %v", err)
	}
	if !ok {
		t.Fatalf("unblinded signature rejected")
	}

	ok, err = sc.VerifyBlind([]byte("a different secret"), sig)
	if err != nil {
		t.Fatalf("VerifyBlind: %v", err)
	}
	if ok {
		t.Fatalf("signature verified against the wrong secret")
	}
}

func TestBlindedMessageHidesSecret(t *testing.T) {
	sc := newTestScheme(t, "blind-hiding")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	secret := []byte("hidden")
	b1, r1, err := sc.ComputeBlindedMessage(secret)
	if err != nil {
		t.Fatalf("ComputeBlindedMessage: %v", err)
	}
	b2, r2, err := sc.ComputeBlindedMessage(secret)
	if err != nil {
		t.Fatalf("ComputeBlindedMessage: %v", err)
	}
	// Fresh blinding factors mask the same hash differently.
	if b1.Equal(b2) || r1.Equal(r2) {
		t.Fatalf("blinding reused randomness")
	}
}

func TestVerifyBlindRejectsForgery(t *testing.T) {
	sc := newTestScheme(t, "blind-forgery")
	if err := sc.GenerateKeys(); err != nil {
		t.Fatalf("GenerateKeys: %v", err)
	}
	secret := []byte("forge target")

	zero, _ := polyring.New(workingD, testQ)
	ok, err := sc.VerifyBlind(secret, zero)
	if err != nil {
		t.Fatalf("VerifyBlind: %v", err)
	}
	if ok {
		t.Fatalf("all-zero signature verified")
	}

	arb, _ := polyring.NewFromCoeffs([]uint64{
		3840, 0, 3840, 3840, 0, 0, 3840, 0,
		1, 3839, 3841, 2, 7680, 42, 1000, 2000,
	}, testQ)
	ok, err = sc.VerifyBlind(secret, arb)
	if err != nil {
		t.Fatalf("VerifyBlind: %v", err)
	}
	if ok {
		t.Fatalf("arbitrary signature verified")
	}
}
