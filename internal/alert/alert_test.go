package alert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqldialect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"id":%d}`, i)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestParseShowType(t *testing.T) {
	tests := []struct {
		input   string
		want    ShowType
		wantErr bool
	}{
		{"table", ShowTable, false},
		{"TABLE", ShowTable, false},
		{" Text ", ShowText, false},
		{"chart", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShowType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedShowType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.input)), got.String())
		})
	}
}

func TestRender_Table(t *testing.T) {
	r := NewRenderer(testutil.NewTestLogger(t))

	got, err := r.Render("ignored", `[{"name":"a","n":1},{"name":"b","n":2.50}]`, ShowTable, false)
	require.NoError(t, err)
	assert.Equal(t, htmlHeader+
		"<thead><tr><th>name</th><th>n</th></tr></thead>\n"+
		"<tr><td>a</td><td>1</td></tr><tr><td>b</td><td>2.50</td></tr>"+
		htmlFooter, got)
}

func TestRender_TableKeepsKeyOrder(t *testing.T) {
	r := NewRenderer(nil)

	got, err := r.Render("", `[{"zeta":1,"alpha":2,"mid":3}]`, ShowTable, false)
	require.NoError(t, err)
	assert.Contains(t, got, "<tr><th>zeta</th><th>alpha</th><th>mid</th></tr>")
	assert.Contains(t, got, "<tr><td>1</td><td>2</td><td>3</td></tr>")
}

func TestRender_EscapesCells(t *testing.T) {
	r := NewRenderer(nil)

	got, err := r.Render("", `[{"<b>":"x & y","n":null,"o":{"k":[1]}}]`, ShowTable, false)
	require.NoError(t, err)
	assert.Contains(t, got, "<th>&lt;b&gt;</th>")
	assert.Contains(t, got, "<td>x &amp; y</td><td>null</td><td>{&#34;k&#34;:[1]}</td>")
}

func TestRender_TableTruncation(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	r := NewRenderer(logger)
	content := rowsJSON(MaxRows + 1)

	got, err := r.Render("", content, ShowTable, false)
	require.NoError(t, err)
	assert.Equal(t, MaxRows+1, strings.Count(got, "<tr>"), "header plus capped rows")
	assert.NotContains(t, got, fmt.Sprintf("<td>%d</td>", MaxRows))
	assert.Contains(t, logs.String(), "alert content truncated")

	got, err = r.Render("", content, ShowTable, true)
	require.NoError(t, err)
	assert.Equal(t, MaxRows+2, strings.Count(got, "<tr>"), "header plus all rows")
}

func TestRender_Text(t *testing.T) {
	r := NewRenderer(nil)

	got, err := r.Render("Job <failed>", `[{"a":"1","b":null}]`, ShowText, false)
	require.NoError(t, err)
	assert.Equal(t, htmlHeader+
		"<thead>Job &lt;failed&gt;</thead>\n"+
		`<tr><th colspan="2">Job &lt;failed&gt;</th></tr>`+
		"<tr><td>a</td><td>1</td></tr><tr><td>b</td><td>null</td></tr>"+
		htmlFooter, got)
}

func TestRender_TextAlwaysCapped(t *testing.T) {
	r := NewRenderer(nil)

	got, err := r.Render("t", rowsJSON(MaxRows+5), ShowText, true)
	require.NoError(t, err)
	assert.Equal(t, MaxRows+1, strings.Count(got, "<tr>"), "title row plus capped rows")
}

func TestRender_EmptyContent(t *testing.T) {
	r := NewRenderer(nil)

	got, err := r.Render("t", "", ShowTable, false)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = r.Render("t", "", ShowText, false)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = r.Render("t", "[]", ShowTable, false)
	require.NoError(t, err)
	assert.Equal(t, htmlHeader+"<thead>t</thead>\n"+htmlFooter, got)
}

func TestRender_EmptyTableKeepsTitle(t *testing.T) {
	got, err := NewRenderer(nil).Render("Nightly <load>", "[]", ShowTable, false)
	require.NoError(t, err)
	assert.Contains(t, got, "<thead>Nightly &lt;load&gt;</thead>")
	assert.NotContains(t, got, "<tr>")
}

func TestRender_Errors(t *testing.T) {
	r := NewRenderer(nil)

	_, err := r.Render("t", "[]", ShowType(0), false)
	require.ErrorIs(t, err, ErrUnsupportedShowType)

	for _, content := range []string{`[{"a":`, `{"a":1}`, `[1, 2]`, `["x"]`} {
		_, err := r.Render("t", content, ShowTable, false)
		assert.ErrorIs(t, err, ErrInvalidContent, content)
	}
}

func TestMarkdown(t *testing.T) {
	r := NewRenderer(nil)
	body, err := r.Render("Daily report", `[{"user":"alice","rows":3}]`, ShowText, false)
	require.NoError(t, err)

	md, err := Markdown(body)
	require.NoError(t, err)
	assert.Contains(t, md, "Daily report")
	assert.Contains(t, md, "alice")
}
