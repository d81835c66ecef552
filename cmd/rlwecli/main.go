package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"RLWE-Signature/diag"
	"RLWE-Signature/polyring"
	"RLWE-Signature/rlwe"
	"RLWE-Signature/rlwe/keys"
	"RLWE-Signature/sampling"
)

func usage() {
	fmt.Println(`usage: rlwecli <gen|sign|verify|blind> [options]

Subcommands:
  gen      Generate a key pair and write ./rlwe_keys/{public,private}.json
           Flags:
             -n      <int>     security parameter, power of two (default: 8)
             -q      <int>     modulus (default: 7681)
             -sigma  <float>   gaussian noise stddev (default: 3.0)

  sign     Sign a message and write ./rlwe_keys/signature.json
           Flags:
             -m      <string>  message to sign (required)
             -v                verbose: log intermediate polynomials

  verify   Verify ./rlwe_keys/signature.json against the stored keys

  blind    Run the three-party blind-signing flow in process
           Flags:
             -secret <string>  requester secret (default: "demo secret")
             -v                verbose: log intermediate polynomials

Diagnostics can also be enabled with RLWE_DEBUG=1.`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify()
	case "blind":
		runBlind(os.Args[2:])
	default:
		usage()
	}
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	n := fs.Int("n", 8, "security parameter (working ring dimension is 2n)")
	q := fs.Uint64("q", 7681, "coefficient modulus")
	sigma := fs.Float64("sigma", rlwe.GaussianStdDev, "gaussian noise stddev")
	_ = fs.Parse(args)

	sc := newScheme(*n, *q, *sigma)
	if err := sc.GenerateKeys(); err != nil {
		log.Fatalf("keygen: %v", err)
	}
	a, b, s := sc.ExportKeys()
	if err := keys.SavePublic(keys.NewPublicKey(*n, *q, a.Coeffs(), b.Coeffs())); err != nil {
		log.Fatalf("save public key: %v", err)
	}
	if err := keys.SavePrivate(keys.NewPrivateKey(*n, *q, s.Coeffs())); err != nil {
		log.Fatalf("save private key: %v", err)
	}
	fmt.Printf("wrote %s/public.json and %s/private.json (n=%d, q=%d)\n", keys.Dir, keys.Dir, *n, *q)
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	msg := fs.String("m", "", "message to sign")
	verbose := fs.Bool("v", false, "verbose diagnostics")
	_ = fs.Parse(args)
	if *msg == "" {
		log.Fatal("sign: -m is required")
	}
	if *verbose {
		diag.Enable()
	}

	sc, n, q := restoreScheme()
	sig, err := sc.Sign([]byte(*msg))
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	bundle := keys.NewSignature(n, q)
	bundle.Message = hex.EncodeToString([]byte(*msg))
	bundle.U = sig.U.Coeffs()
	bundle.V = sig.V.Coeffs()
	if err := keys.SaveSignature(bundle); err != nil {
		log.Fatalf("save signature: %v", err)
	}
	fmt.Printf("wrote %s/signature.json\n", keys.Dir)
}

func runVerify() {
	sc, _, q := restoreScheme()
	bundle, err := keys.LoadSignature()
	if err != nil {
		log.Fatalf("load signature: %v", err)
	}
	message, err := hex.DecodeString(bundle.Message)
	if err != nil {
		log.Fatalf("decode message: %v", err)
	}
	u := mustPoly(bundle.U, q)
	v := mustPoly(bundle.V, q)
	ok, err := sc.Verify(message, rlwe.Signature{U: u, V: v})
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	if !ok {
		fmt.Println("signature: INVALID")
		os.Exit(1)
	}
	fmt.Println("signature: OK")
}

func runBlind(args []string) {
	fs := flag.NewFlagSet("blind", flag.ExitOnError)
	secret := fs.String("secret", "demo secret", "requester secret")
	n := fs.Int("n", 8, "security parameter")
	q := fs.Uint64("q", 7681, "coefficient modulus")
	sigma := fs.Float64("sigma", rlwe.GaussianStdDev, "gaussian noise stddev")
	verbose := fs.Bool("v", false, "verbose diagnostics")
	_ = fs.Parse(args)
	if *verbose {
		diag.Enable()
	}

	sc := newScheme(*n, *q, *sigma)
	if err := sc.GenerateKeys(); err != nil {
		log.Fatalf("keygen: %v", err)
	}
	blinded, blindingFactor, err := sc.ComputeBlindedMessage([]byte(*secret))
	if err != nil {
		log.Fatalf("blind: %v", err)
	}
	blindSig, err := sc.BlindSign(blinded)
	if err != nil {
		log.Fatalf("blind sign: %v", err)
	}
	_, b := sc.PublicKey()
	sig, err := rlwe.ComputeSignature(blindSig, blindingFactor, b)
	if err != nil {
		log.Fatalf("unblind: %v", err)
	}
	ok, err := sc.VerifyBlind([]byte(*secret), sig)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	fmt.Printf("blind signature over %q verifies: %v\n", *secret, ok)
	tampered, err := sc.VerifyBlind([]byte(*secret+"!"), sig)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	fmt.Printf("tampered secret verifies: %v\n", tampered)
}

func newScheme(n int, q uint64, sigma float64) *rlwe.Scheme {
	src, err := sampling.NewSource()
	if err != nil {
		log.Fatalf("random source: %v", err)
	}
	sc, err := rlwe.New(n, q, src, rlwe.Opts{Sigma: sigma})
	if err != nil {
		log.Fatalf("scheme: %v", err)
	}
	return sc
}

func restoreScheme() (*rlwe.Scheme, int, uint64) {
	pk, err := keys.LoadPublic()
	if err != nil {
		log.Fatalf("load public key: %v", err)
	}
	sk, err := keys.LoadPrivate()
	if err != nil {
		log.Fatalf("load private key: %v", err)
	}
	q, err := keys.ParseQ(pk.Q)
	if err != nil {
		log.Fatalf("parse modulus: %v", err)
	}
	sc := newScheme(pk.N, q, rlwe.GaussianStdDev)
	if err := sc.SetKeys(mustPoly(pk.A, q), mustPoly(pk.B, q), mustPoly(sk.S, q)); err != nil {
		log.Fatalf("restore keys: %v", err)
	}
	return sc, pk.N, q
}

func mustPoly(coeffs []uint64, q uint64) polyring.Poly {
	p, err := polyring.NewFromCoeffs(coeffs, q)
	if err != nil {
		log.Fatalf("bad coefficient vector: %v", err)
	}
	return p
}
