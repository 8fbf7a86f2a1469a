package logx

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"XRPVanity/internal/codec"
)

const redacted = "[REDACTED]"

// maskingCore wraps a core and redacts sensitive structured fields and masks
// family seeds in Entry.Message.
type maskingCore struct {
	zapcore.Core
	sensitive    map[string]struct{} // lowercased keys to redact
	maskPattern  *regexp.Regexp
	replaceValue string
}

// NewMaskingCore wraps c with the default sensitive keys and seed pattern.
func NewMaskingCore(c zapcore.Core) zapcore.Core {
	return &maskingCore{
		Core:         c,
		sensitive:    defaultSensitiveKeys(),
		maskPattern:  defaultMaskPattern(),
		replaceValue: redacted,
	}
}

func (m *maskingCore) redact(fields []zapcore.Field) []zapcore.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if _, ok := m.sensitive[strings.ToLower(f.Key)]; ok {
			out = append(out, zap.String(f.Key, m.replaceValue))
			continue
		}
		out = append(out, f)
	}
	return out
}

func (m *maskingCore) With(fields []zapcore.Field) zapcore.Core {
	return &maskingCore{
		Core:         m.Core.With(m.redact(fields)),
		sensitive:    m.sensitive,
		maskPattern:  m.maskPattern,
		replaceValue: m.replaceValue,
	}
}

// Check registers the wrapper, not the inner core, so Write below is reached.
func (m *maskingCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if m.Enabled(entry.Level) {
		return ce.AddCore(entry, m)
	}
	return ce
}

func (m *maskingCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if m.maskPattern != nil && entry.Message != "" {
		entry.Message = m.maskPattern.ReplaceAllString(entry.Message, m.replaceValue)
	}
	return m.Core.Write(entry, m.redact(fields))
}

func defaultSensitiveKeys() map[string]struct{} {
	keys := []string{
		"seed", "family_seed", "familyseed", "secret",
		"private", "private_key", "privatekey", "priv",
		"root_scalar", "sub_scalar",
	}
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[strings.ToLower(k)] = struct{}{}
	}
	return m
}

// defaultMaskPattern matches a family seed: 's' and 28 alphabet digits.
func defaultMaskPattern() *regexp.Regexp {
	return regexp.MustCompile(`\bs[` + codec.Alphabet + `]{28}\b`)
}
