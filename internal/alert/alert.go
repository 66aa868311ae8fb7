// Package alert renders query result rows into the HTML body of an alert
// notification, with a plain-text alternative produced from the HTML.
package alert

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

// MaxRows caps the number of rows rendered unless all rows are requested.
const MaxRows = 1000

// ShowType selects the layout of an alert body.
type ShowType int

// Supported layouts.
const (
	ShowTable ShowType = iota + 1 // one row per object, keys as header
	ShowText                      // one key/value row per entry
)

var (
	// ErrUnsupportedShowType is returned for a layout the renderer cannot produce.
	ErrUnsupportedShowType = errors.New("unsupported show type")
	// ErrInvalidContent is returned when content is not a JSON array of objects.
	ErrInvalidContent = errors.New("invalid alert content")
)

// String returns the configuration name of the show type.
func (s ShowType) String() string {
	switch s {
	case ShowTable:
		return "table"
	case ShowText:
		return "text"
	default:
		return fmt.Sprintf("ShowType(%d)", int(s))
	}
}

// ParseShowType parses a show type name, ignoring case.
func ParseShowType(s string) (ShowType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return ShowTable, nil
	case "text":
		return ShowText, nil
	default:
		return 0, fmt.Errorf("%w: %q (want table or text)", ErrUnsupportedShowType, s)
	}
}

// HTML fragments of the alert page.
const (
	htmlHeader = `<html><head><meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>` +
		`<style type="text/css">table { margin-top:0px; padding-top:0px; border:1px solid; font-size: 14px; ` +
		`color: #333333; border-width: 1px; border-color: #666666; border-collapse: collapse; }` +
		`table th { border-width: 1px; padding: 8px; border-style: solid; border-color: #666666; background-color: #dedede; text-align: left; }` +
		`table td { border-width: 1px; padding: 8px; border-style: solid; border-color: #666666; background-color: #ffffff; text-align: left; }` +
		`</style></head><body style="margin:0;padding:0"><table border="1px" cellpadding="5px" cellspacing="-10px">`
	htmlFooter = `</table></body></html>`
)

// Renderer builds alert bodies.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a renderer. A nil logger discards log output.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{logger: logger}
}

// Render builds the HTML alert body for content, a JSON array of flat
// objects whose key order is kept.
//
// TABLE renders one row per object under a header row taken from the first
// object, or just the title when there are no objects; TEXT renders a title row followed by one key/value row per entry.
// Rows beyond MaxRows are dropped unless showAll is set; TEXT always applies
// the cap. Empty content yields content itself for TABLE and "" for TEXT.
func (r *Renderer) Render(title, content string, show ShowType, showAll bool) (string, error) {
	switch show {
	case ShowTable:
		return r.renderTable(title, content, showAll)
	case ShowText:
		return r.renderText(title, content)
	default:
		return "", fmt.Errorf("render %s: %w", show, ErrUnsupportedShowType)
	}
}

func (r *Renderer) renderTable(title, content string, showAll bool) (string, error) {
	if content == "" {
		return content, nil
	}
	rows, err := r.decode(content, !showAll)
	if err != nil {
		return "", err
	}

	var head, body strings.Builder
	for i, row := range rows {
		if i == 0 {
			head.WriteString("<tr>")
			for _, f := range row {
				writeCell(&head, "th", f.key)
			}
			head.WriteString("</tr>")
		}
		body.WriteString("<tr>")
		for _, f := range row {
			writeCell(&body, "td", f.value)
		}
		body.WriteString("</tr>")
	}
	if len(rows) == 0 {
		// No header row to take its place, so the title stays.
		return page(html.EscapeString(title), ""), nil
	}
	return page(head.String(), body.String()), nil
}

func (r *Renderer) renderText(title, content string) (string, error) {
	if content == "" {
		return "", nil
	}
	rows, err := r.decode(content, true)
	if err != nil {
		return "", err
	}

	escaped := html.EscapeString(title)
	var body strings.Builder
	body.WriteString(`<tr><th colspan="2">`)
	body.WriteString(escaped)
	body.WriteString("</th></tr>")
	for _, row := range rows {
		for _, f := range row {
			body.WriteString("<tr>")
			writeCell(&body, "td", f.key)
			writeCell(&body, "td", f.value)
			body.WriteString("</tr>")
		}
	}
	return page(escaped, body.String()), nil
}

type field struct {
	key   string
	value string
}

// decode reads content as a JSON array of objects, keeping key order.
func (r *Renderer) decode(content string, limit bool) ([][]field, error) {
	if !gjson.Valid(content) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidContent)
	}
	doc := gjson.Parse(content)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array, got %s", ErrInvalidContent, doc.Type)
	}

	items := doc.Array()
	if limit && len(items) > MaxRows {
		r.logger.Debug("alert content truncated", "rows", len(items), "limit", MaxRows)
		items = items[:MaxRows]
	}

	rows := make([][]field, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidContent, i)
		}
		var row []field
		item.ForEach(func(key, value gjson.Result) bool {
			row = append(row, field{key: key.String(), value: cellText(value)})
			return true
		})
		rows = append(rows, row)
	}
	return rows, nil
}

// cellText renders a JSON value as cell text: strings unquoted, null as
// "null", nested values as their JSON source.
func cellText(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.String:
		return v.String()
	default:
		return v.Raw
	}
}

func writeCell(sb *strings.Builder, tag, text string) {
	sb.WriteString("<" + tag + ">")
	sb.WriteString(html.EscapeString(text))
	sb.WriteString("</" + tag + ">")
}

// page wraps rows in the HTML document, adding a thead when title is set.
func page(title, rows string) string {
	var sb strings.Builder
	sb.WriteString(htmlHeader)
	if title != "" {
		sb.WriteString("<thead>")
		sb.WriteString(title)
		sb.WriteString("</thead>\n")
	}
	sb.WriteString(rows)
	sb.WriteString(htmlFooter)
	return sb.String()
}

// Markdown converts a rendered alert body into a plain-text alternative.
func Markdown(body string) (string, error) {
	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("convert alert to markdown: %w", err)
	}
	return md, nil
}
