package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
)

// CurrentTimeTool reports the current time, formatted with strftime-style
// directives. Models overwhelmingly emit strftime formats, so the tool speaks
// that dialect and renders it onto Go's time package.
type CurrentTimeTool struct {
	now func() time.Time
}

func NewCurrentTimeTool() *CurrentTimeTool {
	return &CurrentTimeTool{now: time.Now}
}

func (t *CurrentTimeTool) Name() string { return "current_time" }
func (t *CurrentTimeTool) Description() string {
	return "Get the current time in the specified strftime format."
}

func (t *CurrentTimeTool) Parameters() []schema.Parameter {
	return []schema.Parameter{
		{Name: "format", Type: schema.ParamString, Description: "strftime format string", Default: "%Y-%m-%d %H:%M:%S"},
	}
}

func (t *CurrentTimeTool) Execute(_ context.Context, args map[string]any) (any, error) {
	format := args["format"].(string)
	out, err := renderStrftime(t.now(), format)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// renderStrftime renders the supported strftime directives against ts.
// An unknown or incomplete directive is a domain error, reported before any
// output is produced so partial results never reach the transcript.
func renderStrftime(ts time.Time, format string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			sb.WriteByte(format[i])
			continue
		}
		if i+1 >= len(format) {
			return "", schema.NewToolError("bad_format", "incomplete format directive at end of %q", format)
		}
		i++
		rendered, ok := renderDirective(ts, format[i])
		if !ok {
			return "", schema.NewToolError("bad_format", "invalid format directive %%%c", format[i])
		}
		sb.WriteString(rendered)
	}
	return sb.String(), nil
}

func renderDirective(ts time.Time, d byte) (string, bool) {
	switch d {
	case 'a':
		return ts.Format("Mon"), true
	case 'A':
		return ts.Format("Monday"), true
	case 'w':
		return fmt.Sprintf("%d", int(ts.Weekday())), true
	case 'd':
		return ts.Format("02"), true
	case 'b':
		return ts.Format("Jan"), true
	case 'B':
		return ts.Format("January"), true
	case 'm':
		return ts.Format("01"), true
	case 'y':
		return ts.Format("06"), true
	case 'Y':
		return ts.Format("2006"), true
	case 'H':
		return ts.Format("15"), true
	case 'I':
		return ts.Format("03"), true
	case 'p':
		return ts.Format("PM"), true
	case 'M':
		return ts.Format("04"), true
	case 'S':
		return ts.Format("05"), true
	case 'f':
		return fmt.Sprintf("%06d", ts.Nanosecond()/1000), true
	case 'z':
		return ts.Format("-0700"), true
	case 'Z':
		return ts.Format("MST"), true
	case 'j':
		return fmt.Sprintf("%03d", ts.YearDay()), true
	case 'U':
		// Week of year, Sunday first; days before the first Sunday are week 0.
		return fmt.Sprintf("%02d", (ts.YearDay()-1+7-int(ts.Weekday()))/7), true
	case 'W':
		// Week of year, Monday first.
		return fmt.Sprintf("%02d", (ts.YearDay()-1+7-(int(ts.Weekday())+6)%7)/7), true
	case 'c':
		return ts.Format("Mon Jan  2 15:04:05 2006"), true
	case 'x':
		return ts.Format("01/02/06"), true
	case 'X':
		return ts.Format("15:04:05"), true
	case '%':
		return "%", true
	default:
		return "", false
	}
}
