package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/CristiGvl/cascade-hwmon/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// payloader is what every model exposes through its embedded model.Payload.
type payloader interface {
	Get(key string) any
	Keys() []string
	JSON() json.RawMessage
}

// output is a command result, printable as JSON or as a table.
type output struct {
	raw    json.RawMessage
	header []string
	rows   [][]string
}

var nullOutput = output{raw: json.RawMessage("null")}

// one renders a single model as a FIELD/VALUE table.
func one[T any, P interface {
	*T
	payloader
}](v *T) output {
	if v == nil {
		return nullOutput
	}
	p := P(v)
	return output{
		raw:    p.JSON(),
		header: []string{"FIELD", "VALUE"},
		rows: lo.Map(p.Keys(), func(key string, _ int) []string {
			return []string{key, format(p.Get(key))}
		}),
	}
}

// many renders a list with one column per key.
func many[T any, P interface {
	*T
	payloader
}](items []*T, columns ...string) output {
	items = lo.Filter(items, func(item *T, _ int) bool { return item != nil })
	raws := lo.Map(items, func(item *T, _ int) json.RawMessage {
		return P(item).JSON()
	})
	raw, _ := json.Marshal(raws)

	return output{
		raw:    raw,
		header: columns,
		rows: lo.Map(items, func(item *T, _ int) []string {
			p := P(item)
			return lo.Map(columns, func(col string, _ int) string {
				return format(p.Get(col))
			})
		}),
	}
}

func success(ok bool) output {
	raw, _ := json.Marshal(map[string]bool{"success": ok})
	return output{
		raw:    raw,
		header: []string{"SUCCESS"},
		rows:   [][]string{{strconv.FormatBool(ok)}},
	}
}

func format(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return cast.ToString(val)
	}
}

func (o output) write(w io.Writer, mode string) error {
	if mode == config.OutputJSON {
		_, err := fmt.Fprintln(w, string(o.raw))
		return err
	}

	if len(o.header) == 0 {
		_, err := fmt.Fprintln(w, "no data")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(lo.ToAnySlice(o.header)...)
	if err := table.Bulk(o.rows); err != nil {
		return err
	}
	return table.Render()
}
