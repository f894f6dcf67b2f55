package sink

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/unicode/norm"

	"vkdebug/internal/messenger"
	"vkdebug/internal/record"
)

// Format is the rendering of a record.
type Format uint8

const (
	FormatAuto   Format = iota // pick from output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatText:
		return "text"
	case FormatNDJSON:
		return "ndjson"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "pretty":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid format: %q (expected: auto|text|ndjson)", s)
	}
}

// palette colors the severity column of text output.
type palette struct {
	err, warn, info, verbose, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan),
		verbose: color.New(color.Faint),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.verbose, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s messenger.Severity) *color.Color {
	switch {
	case s.Error():
		return p.err
	case s.Warning():
		return p.warn
	case s.Information():
		return p.info
	default:
		return p.verbose
	}
}

// FormatRecord renders r in the given format, without color.
func FormatRecord(r *record.Record, format Format) []byte {
	return formatRecord(r, format, newPalette(false))
}

func formatRecord(r *record.Record, format Format, p palette) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(r)
	}
	return formatText(r, p)
}

func formatNDJSON(r *record.Record) []byte {
	data, err := json.Marshal(r)
	if err != nil {
		data = fmt.Appendf(nil, `{"seq":%d,"error":%q}`, r.Seq, err.Error())
	}
	return append(data, '\n')
}

// formatText renders:
//
//	[seq] SEVERITY category id-name (#id): description
//	    object type 0xhandle "name"
func formatText(r *record.Record, p palette) []byte {
	var sb strings.Builder
	sb.WriteString(p.dim.Sprintf("[%6d] ", r.Seq))
	sb.WriteString(p.severity(r.Severity).Sprintf("%-11s", strings.ToUpper(r.Severity.String())))
	sb.WriteByte(' ')
	sb.WriteString(fmt.Sprintf("%-11s", r.Category.String()))
	if r.HasIDName {
		sb.WriteByte(' ')
		sb.WriteString(r.IDName)
	}
	if r.IDNumber != 0 {
		sb.WriteString(p.dim.Sprintf(" (#%d)", r.IDNumber))
	}
	sb.WriteString(": ")
	sb.WriteString(norm.NFC.String(r.Description))
	sb.WriteByte('\n')

	for _, label := range r.QueueLabels {
		sb.WriteString(p.dim.Sprintf("    queue label %q\n", label))
	}
	for _, label := range r.CmdBufLabels {
		sb.WriteString(p.dim.Sprintf("    cmd label %q\n", label))
	}
	for _, o := range r.Objects {
		sb.WriteString(fmt.Sprintf("    %s 0x%x", o.Type, o.Handle))
		if o.HasName {
			sb.WriteString(fmt.Sprintf(" %q", o.Name))
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
