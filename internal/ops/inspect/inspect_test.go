package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"XRPVanity/internal/codec"
	"XRPVanity/pkg/logx"
)

func TestInspectKnownSeeds(t *testing.T) {
	cases := []struct {
		seed, address, accountID string
	}{
		{"snoPBrXtMeMyMHUVTgbuqAfg1SUTb", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", "b5f762798a53d543a014caf8b297cff8f2f937e8"},
		{"sp6JdwovBCsiwnMhXuvZGZtPUoGVj", "rU2k1U7W1xToQrFQW8gyWiXQFqVkJwrSn9", "7f0bba382512c0a00a1630506ae44ebe8ac20d27"},
	}
	for _, tc := range cases {
		t.Run(tc.seed, func(t *testing.T) {
			res, err := Inspect(tc.seed, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.address, res.Address)
			assert.Equal(t, tc.accountID, res.AccountID)
			assert.Len(t, res.AccountPublic, 66)
		})
	}
}

func TestInspectAccountPublic(t *testing.T) {
	res, err := Inspect("sp6JdwovBCsiwnMhXuvZGZtPUoGVj", nil)
	require.NoError(t, err)
	assert.Equal(t, "0257cf4f3929f535518d624292d62ace47e9da563d7dfa7ea4c6bc24258ab467b7", res.AccountPublic)
}

func TestInspectRejectsBadInput(t *testing.T) {
	_, err := Inspect("sp6JdwovBCsiwnMhXuvZGZtPUoGVk", nil)
	assert.ErrorIs(t, err, codec.ErrChecksum)

	_, err = Inspect("rU2k1U7W1xToQrFQW8gyWiXQFqVkJwrSn9", nil)
	assert.ErrorIs(t, err, codec.ErrInvalidFormat)

	_, err = Inspect("sp6Jdwov0CsiwnMhXuvZGZtPUoGVj", nil)
	assert.ErrorIs(t, err, codec.ErrInvalidCharacter)
}

func TestInspectMasksSeedInLogs(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	logx.Set(zap.New(logx.NewMaskingCore(obs)))
	t.Cleanup(func() { logx.Set(zap.NewNop()) })

	_, err := Inspect("sp6JdwovBCsiwnMhXuvZGZtPUoGVj", nil)
	require.NoError(t, err)

	entries := logs.FilterMessage("inspected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[REDACTED]", entries[0].ContextMap()["family_seed"])
	assert.Equal(t, "rU2k1U7W1xToQrFQW8gyWiXQFqVkJwrSn9", entries[0].ContextMap()["address"])
}
