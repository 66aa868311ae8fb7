package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqldialect/internal/cli/output"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want output.OutputMode
	}{
		{"text", output.ModeText},
		{"JSON", output.ModeJSON},
		{" yaml ", output.ModeYAML},
		{"auto", output.ModeAuto},
		{"", output.ModeAuto},
		{"xml", output.ModeAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, output.Mode(tt.in), "Mode(%q)", tt.in)
	}
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, output.ModeText, output.NewRendererWithTTY(&buf, &buf, true, output.ModeAuto).EffectiveMode())
	assert.Equal(t, output.ModeJSON, output.NewRendererWithTTY(&buf, &buf, false, output.ModeAuto).EffectiveMode())
	assert.Equal(t, output.ModeYAML, output.NewRendererWithTTY(&buf, &buf, true, output.ModeYAML).EffectiveMode())
	assert.False(t, output.NewRenderer(&buf, &buf, output.ModeAuto).IsTTY(), "a buffer is never a terminal")
}

func TestValue(t *testing.T) {
	v := map[string]any{"kind": "column", "name": "a"}

	tests := []struct {
		mode output.OutputMode
		want string
	}{
		{output.ModeJSON, "{\n  \"kind\": \"column\",\n  \"name\": \"a\"\n}\n"},
		{output.ModeYAML, "kind: column\nname: a\n"},
		{output.ModeText, "text\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var out bytes.Buffer
			r := output.NewRendererWithTTY(&out, &out, false, tt.mode)
			require.NoError(t, r.Value(v, func() { r.Println("text") }))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPlainOutputHasNoANSI(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.NewRendererWithTTY(&out, &errOut, false, output.ModeText)

	r.Header("Dialects")
	r.Success("ok")
	r.Error("bad")

	assert.Equal(t, "Dialects\n✓ ok\n", out.String())
	assert.Equal(t, "✗ bad\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	r := output.NewRendererWithTTY(&out, &out, false, output.ModeText)

	r.Table([]string{"name", "aggregate"}, [][]any{{"sum", true}, {"upper", false}})

	s := out.String()
	assert.Contains(t, s, "NAME")
	assert.Contains(t, s, "sum")
	assert.Contains(t, s, "upper")
	assert.Contains(t, s, "false")
}
