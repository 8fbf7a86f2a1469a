// Package inspect verifies a found result offline: it decodes a family seed
// and re-derives the account it controls.
package inspect

import (
	"encoding/hex"
	"fmt"

	"XRPVanity/internal/codec"
	"XRPVanity/internal/crypto"
	"XRPVanity/pkg/logx"
)

type Result struct {
	Address       string
	AccountID     string // hex
	AccountPublic string // hex, compressed
	Sequence      uint32
	SubSequence   uint32
}

// Inspect decodes familySeed and derives its account with d. A nil d uses
// the default deriver.
func Inspect(familySeed string, d *crypto.Deriver) (*Result, error) {
	app := logx.With("inspect")

	seed, err := codec.DecodeFamilySeed(familySeed)
	if err != nil {
		app.Warnw("decode family seed failed", "family_seed", familySeed, "err", err)
		return nil, fmt.Errorf("decode family seed: %w", err)
	}
	if d == nil {
		d = crypto.NewDeriver()
	}
	keys, err := d.Derive(seed)
	if err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}

	res := &Result{
		Address:       keys.Address(),
		AccountID:     hex.EncodeToString(keys.AccountID[:]),
		AccountPublic: hex.EncodeToString(keys.AccountPublic[:]),
		Sequence:      keys.Sequence,
		SubSequence:   keys.SubSequence,
	}
	app.Debugw("inspected", "family_seed", familySeed, "address", res.Address)
	return res, nil
}
