package crypto

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"

	"XRPVanity/internal/codec"
)

const (
	SeedSize           = codec.FamilySeedSize
	PublicKeySize      = 33
	AccountIDSize      = codec.AccountIDSize
	halfHashSize       = 32
	defaultMaxAttempts = uint64(math.MaxUint32) + 1
)

// ErrSequenceExhausted is returned when no valid scalar is found within the
// attempt bound. With SHA-512 this does not happen in practice.
var ErrSequenceExhausted = errors.New("derivation sequence exhausted")

// HalfHasher returns the first 32 bytes of a 64 byte digest of data.
type HalfHasher func(data []byte) [halfHashSize]byte

// SHA512Half is the default HalfHasher.
func SHA512Half(data []byte) (out [halfHashSize]byte) {
	sum := sha512.Sum512(data)
	copy(out[:], sum[:halfHashSize])
	return
}

// Keys is everything derived from one seed.
type Keys struct {
	Seed          [SeedSize]byte
	RootScalar    secp256k1.ModNScalar
	RootPublic    [PublicKeySize]byte
	SubScalar     secp256k1.ModNScalar
	AccountPublic [PublicKeySize]byte
	AccountID     [AccountIDSize]byte

	// Sequence and SubSequence are the counters that produced the accepted scalars.
	Sequence    uint32
	SubSequence uint32
}

// Address returns the encoded account address.
func (k *Keys) Address() string {
	return codec.EncodeAccountID(k.AccountID)
}

// FamilySeed returns the encoded seed.
func (k *Keys) FamilySeed() string {
	return codec.EncodeFamilySeed(k.Seed)
}

type Option func(*Deriver)

// WithHalfHasher replaces SHA-512-half. Tests use it to force rejections.
func WithHalfHasher(h HalfHasher) Option {
	return func(d *Deriver) { d.half = h }
}

// WithMaxAttempts bounds each of the two scalar search loops.
func WithMaxAttempts(n uint64) Option {
	return func(d *Deriver) {
		if n > 0 && n <= defaultMaxAttempts {
			d.maxAttempts = n
		}
	}
}

// Deriver turns a seed into root and account keys. It holds no per-call
// state and is safe for concurrent use.
type Deriver struct {
	half        HalfHasher
	maxAttempts uint64
}

func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{half: SHA512Half, maxAttempts: defaultMaxAttempts}
	for _, o := range opts {
		o(d)
	}
	return d
}

// NewSeed reads SeedSize bytes from r.
func NewSeed(r io.Reader) (seed [SeedSize]byte, err error) {
	if _, err = io.ReadFull(r, seed[:]); err != nil {
		return seed, fmt.Errorf("read seed: %w", err)
	}
	return seed, nil
}

// Derive runs seed -> root scalar -> root point -> sub scalar ->
// account point -> account id.
func (d *Deriver) Derive(seed [SeedSize]byte) (*Keys, error) {
	k := &Keys{Seed: seed}

	// seed ‖ seq
	var rootBuf [SeedSize + 4]byte
	copy(rootBuf[:], seed[:])
	seq, err := d.scalar(rootBuf[:], SeedSize, &k.RootScalar)
	if err != nil {
		return nil, fmt.Errorf("root key: %w", err)
	}
	k.Sequence = seq

	var root secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k.RootScalar, &root)
	root.ToAffine()
	copy(k.RootPublic[:], secp256k1.NewPublicKey(&root.X, &root.Y).SerializeCompressed())

	// rootPub ‖ 0 ‖ subSeq
	var subBuf [PublicKeySize + 4 + 4]byte
	copy(subBuf[:], k.RootPublic[:])
	subSeq, err := d.scalar(subBuf[:], PublicKeySize+4, &k.SubScalar)
	if err != nil {
		return nil, fmt.Errorf("account key: %w", err)
	}
	k.SubSequence = subSeq

	var sub, acct secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k.SubScalar, &sub)
	secp256k1.AddNonConst(&sub, &root, &acct)
	acct.ToAffine()
	copy(k.AccountPublic[:], secp256k1.NewPublicKey(&acct.X, &acct.Y).SerializeCompressed())

	k.AccountID = AccountID(k.AccountPublic[:])
	return k, nil
}

// scalar writes a big-endian counter at buf[off:off+4] and hashes buf until
// the half digest is a valid non-zero scalar below the curve order.
func (d *Deriver) scalar(buf []byte, off int, out *secp256k1.ModNScalar) (uint32, error) {
	for n := uint64(0); n < d.maxAttempts; n++ {
		seq := uint32(n)
		binary.BigEndian.PutUint32(buf[off:], seq)
		h := d.half(buf)
		if overflow := out.SetByteSlice(h[:]); overflow || out.IsZero() {
			continue
		}
		return seq, nil
	}
	out.Zero()
	return 0, fmt.Errorf("%w after %d attempts", ErrSequenceExhausted, d.maxAttempts)
}

// AccountID is RIPEMD160(SHA256(pub)).
func AccountID(pub []byte) (id [AccountIDSize]byte) {
	sum := sha256.Sum256(pub)
	h := ripemd160.New()
	h.Write(sum[:])
	copy(id[:], h.Sum(nil))
	return
}
