// Package codec implements the checksummed base58 text form used for
// account addresses and family seeds.
package codec

import (
	"errors"
	"math/big"
	"sync"

	"github.com/minio/sha256-simd"
)

// Alphabet is the 58 character digit set, most significant digit value last.
// It is not the bitcoin alphabet.
const Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

const alphabetIdx0 = 'r'

// Type tags written as the first byte of the encoded buffer.
const (
	TagAccountID  byte = 0
	TagFamilySeed byte = 33
)

const (
	AccountIDSize  = 20
	FamilySeedSize = 16
	ChecksumSize   = 4
)

var (
	ErrChecksum         = errors.New("checksum error")
	ErrInvalidFormat    = errors.New("invalid format: type and/or checksum bytes missing")
	ErrInvalidCharacter = errors.New("invalid character")
)

var b58 = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 255
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = byte(i)
	}
	return t
}()

var bigIntPool = &sync.Pool{
	New: func() interface{} { return new(big.Int) },
}

var bigRadix = big.NewInt(58)

// IsAlphabet reports whether c is one of the 58 digits.
func IsAlphabet(c byte) bool {
	return b58[c] != 255
}

// Checksum returns the first four bytes of sha256(sha256(b)).
func Checksum(b []byte) (cksum [ChecksumSize]byte) {
	h := sha256.Sum256(b)
	h2 := sha256.Sum256(h[:])
	copy(cksum[:], h2[:ChecksumSize])
	return
}

// Encode writes tag ‖ payload ‖ checksum(tag ‖ payload) in base58.
// Leading zero bytes of the buffer become leading 'r' digits.
func Encode(tag byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+ChecksumSize)
	buf = append(buf, tag)
	buf = append(buf, payload...)
	cksum := Checksum(buf)
	buf = append(buf, cksum[:]...)
	return encode(buf)
}

// EncodeAccountID returns the address form of a 20 byte account identifier.
func EncodeAccountID(id [AccountIDSize]byte) string {
	return Encode(TagAccountID, id[:])
}

// EncodeFamilySeed returns the family seed form of a 16 byte seed.
func EncodeFamilySeed(seed [FamilySeedSize]byte) string {
	return Encode(TagFamilySeed, seed[:])
}

func encode(b []byte) string {
	x := bigIntPool.Get().(*big.Int).SetBytes(b)
	mod := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(x)
	defer bigIntPool.Put(mod)

	// digits are collected least significant first and reversed at the end
	answer := make([]byte, 0, len(b)*138/100+1)
	for x.Sign() > 0 {
		x.DivMod(x, bigRadix, mod)
		answer = append(answer, Alphabet[mod.Int64()])
	}

	for _, c := range b {
		if c != 0 {
			break
		}
		answer = append(answer, alphabetIdx0)
	}

	alen := len(answer)
	for i := 0; i < alen/2; i++ {
		answer[i], answer[alen-1-i] = answer[alen-1-i], answer[i]
	}
	return string(answer)
}

// Decode reverses Encode and verifies the checksum.
func Decode(s string) (tag byte, payload []byte, err error) {
	raw, err := decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) < 1+ChecksumSize {
		return 0, nil, ErrInvalidFormat
	}
	body := raw[:len(raw)-ChecksumSize]
	var cksum [ChecksumSize]byte
	copy(cksum[:], raw[len(raw)-ChecksumSize:])
	if Checksum(body) != cksum {
		return 0, nil, ErrChecksum
	}
	return body[0], body[1:], nil
}

// DecodeFamilySeed parses a family seed back into its 16 raw bytes.
func DecodeFamilySeed(s string) (seed [FamilySeedSize]byte, err error) {
	tag, payload, err := Decode(s)
	if err != nil {
		return seed, err
	}
	if tag != TagFamilySeed || len(payload) != FamilySeedSize {
		return seed, ErrInvalidFormat
	}
	copy(seed[:], payload)
	return seed, nil
}

func decode(s string) ([]byte, error) {
	answer := new(big.Int)
	scratch := new(big.Int)
	for i := 0; i < len(s); i++ {
		d := b58[s[i]]
		if d == 255 {
			return nil, ErrInvalidCharacter
		}
		answer.Mul(answer, bigRadix)
		answer.Add(answer, scratch.SetInt64(int64(d)))
	}

	tmp := answer.Bytes()
	var numZeros int
	for numZeros = 0; numZeros < len(s); numZeros++ {
		if s[numZeros] != alphabetIdx0 {
			break
		}
	}
	out := make([]byte, numZeros+len(tmp))
	copy(out[numZeros:], tmp)
	return out, nil
}
