// Package keys persists RLWE key material and signature bundles as JSON
// under ./rlwe_keys/. The files are a CLI convenience, not a wire
// format: coefficient vectors are stored canonically reduced, the
// modulus as a hex string.
package keys

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	keyVersion       = "rlwe-key-v1"
	signatureVersion = "rlwe-signature-v1"

	// Dir is the directory all bundles are written to.
	Dir = "rlwe_keys"
)

// PublicKey is the persisted public pair (a, b).
type PublicKey struct {
	Version string   `json:"version"`
	N       int      `json:"n"`
	Q       string   `json:"q"`
	A       []uint64 `json:"a"`
	B       []uint64 `json:"b"`
}

// PrivateKey is the persisted secret polynomial s.
type PrivateKey struct {
	Version string   `json:"version"`
	N       int      `json:"n"`
	Q       string   `json:"q"`
	S       []uint64 `json:"s"`
}

// Signature is the persisted direct-scheme signature bundle.
type Signature struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Params    struct {
		N int    `json:"n"`
		Q string `json:"q"`
	} `json:"params"`
	Message string   `json:"message_hex"`
	U       []uint64 `json:"u"`
	V       []uint64 `json:"v"`
}

// NewPublicKey builds a versioned public key bundle.
func NewPublicKey(n int, q uint64, a, b []uint64) *PublicKey {
	return &PublicKey{Version: keyVersion, N: n, Q: FormatQ(q), A: a, B: b}
}

// NewPrivateKey builds a versioned private key bundle.
func NewPrivateKey(n int, q uint64, s []uint64) *PrivateKey {
	return &PrivateKey{Version: keyVersion, N: n, Q: FormatQ(q), S: s}
}

// NewSignature builds a timestamped signature bundle.
func NewSignature(n int, q uint64) *Signature {
	sig := &Signature{Version: signatureVersion}
	sig.Timestamp = time.Now().UTC().Format(time.RFC3339)
	sig.Params.N = n
	sig.Params.Q = FormatQ(q)
	return sig
}

// FormatQ renders the modulus as the hex string stored in bundles.
func FormatQ(q uint64) string { return strconv.FormatUint(q, 16) }

// ParseQ parses a stored modulus.
func ParseQ(s string) (uint64, error) { return strconv.ParseUint(s, 16, 64) }

func save(name string, v any) error {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(Dir, name))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(Dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SavePublic writes the public key to ./rlwe_keys/public.json.
func SavePublic(pk *PublicKey) error {
	if pk == nil {
		return nil
	}
	return save("public.json", pk)
}

// LoadPublic reads the public key from ./rlwe_keys/public.json.
func LoadPublic() (*PublicKey, error) {
	var pk PublicKey
	if err := load("public.json", &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}

// SavePrivate writes the private key to ./rlwe_keys/private.json.
func SavePrivate(sk *PrivateKey) error {
	if sk == nil {
		return nil
	}
	return save("private.json", sk)
}

// LoadPrivate reads the private key from ./rlwe_keys/private.json.
func LoadPrivate() (*PrivateKey, error) {
	var sk PrivateKey
	if err := load("private.json", &sk); err != nil {
		return nil, err
	}
	return &sk, nil
}

// SaveSignature writes the signature to ./rlwe_keys/signature.json.
func SaveSignature(sig *Signature) error {
	if sig == nil {
		return nil
	}
	return save("signature.json", sig)
}

// LoadSignature reads the signature from ./rlwe_keys/signature.json.
func LoadSignature() (*Signature, error) {
	var sig Signature
	if err := load("signature.json", &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}
