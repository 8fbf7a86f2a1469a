package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cycleReader yields 0x00 0x01 ... 0x0F forever.
type cycleReader struct{ pos int }

func (r *cycleReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.pos % 16)
		r.pos++
	}
	return len(p), nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, r *Runner, args ...string) (code int, out, errOut string) {
	t.Helper()
	var o, e bytes.Buffer
	r.Out, r.Err = &o, &e
	code = r.Execute(context.Background(), args)
	return code, o.String(), e.String()
}

func TestSearchPrintsBannerAndMatches(t *testing.T) {
	cfg := writeConfig(t, "log_level: error\nstatus: never\n")
	r := NewRunner(nil, nil)
	r.Rand = &cycleReader{}
	r.MaxIterations = 2

	code, out, _ := run(t, r, "--config", cfg, "1", "U2k1")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "xrp-vanity", lines[0])
	assert.Equal(t, "Searching Prefix: rU2k1 - Threads: 1", lines[1])
	assert.Equal(t, "", lines[2])
	for _, l := range lines[3:] {
		assert.True(t, strings.HasSuffix(l, "] rU2k1U7W1xToQrFQW8gyWiXQFqVkJwrSn9 => sp6JdwovBCsiwnMhXuvZGZtPUoGVj"), l)
	}
}

func TestSearchLocalizedBanner(t *testing.T) {
	cfg := writeConfig(t, "language: ru\nlog_level: error\nstatus: never\n")
	r := NewRunner(nil, nil)
	r.Rand = &cycleReader{}
	r.MaxIterations = 1

	code, out, _ := run(t, r, "--config", cfg, "2", "rzz")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Поиск префикса: rzz - Потоков: 2")
}

func TestSearchArgumentErrors(t *testing.T) {
	cfg := writeConfig(t, "log_level: error\n")
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "usage:   'xrpvanity <Threads> <Prefix>'"},
		{"one arg", []string{"4"}, "usage:"},
		{"zero threads", []string{"0", "rRob"}, `Threads must be a positive integer: "0"`},
		{"non numeric threads", []string{"four", "rRob"}, `Threads must be a positive integer: "four"`},
		{"impossible char", []string{"4", "rR0b"}, "Impossible pattern; Character: '0'"},
		{"impossible lowercase l", []string{"4", "rlob"}, "Impossible pattern; Character: 'l'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRunner(nil, nil)
			code, out, errOut := run(t, r, append([]string{"--config", cfg}, tc.args...)...)
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut, tc.want)
			assert.NotContains(t, out, "Searching Prefix")
		})
	}
}

func TestMissingConfigFallsBack(t *testing.T) {
	r := NewRunner(nil, nil)
	r.Rand = &cycleReader{}
	r.MaxIterations = 1

	missing := filepath.Join(t.TempDir(), "nope.yaml")
	code, out, errOut := run(t, r, "--config", missing, "--log-level", "error", "--status", "never", "1", "r")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "using defaults")
	assert.Contains(t, out, "Searching Prefix: r - Threads: 1")
}

func TestInvalidConfigFails(t *testing.T) {
	cfg := writeConfig(t, "status: sometimes\n")
	code, _, errOut := run(t, NewRunner(nil, nil), "--config", cfg, "1", "r")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "status must be one of")
}

func TestStatusFlagOverridesConfig(t *testing.T) {
	cfg := writeConfig(t, "log_level: error\nstatus: never\n")
	r := NewRunner(nil, nil)
	_, _, errOut := run(t, r, "--config", cfg, "--status", "bogus", "1", "r")
	assert.Contains(t, errOut, "status must be one of")
}

func TestInspectCommand(t *testing.T) {
	cfg := writeConfig(t, "log_level: error\n")

	code, out, _ := run(t, NewRunner(nil, nil), "--config", cfg, "inspect", "snoPBrXtMeMyMHUVTgbuqAfg1SUTb")
	require.Equal(t, 0, code)
	assert.Equal(t, "Address: rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh\n", out)

	code, _, errOut := run(t, NewRunner(nil, nil), "--config", cfg, "inspect", "snoPBrXtMeMyMHUVTgbuqAfg1SUTc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "checksum")
}
