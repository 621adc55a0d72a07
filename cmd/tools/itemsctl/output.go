package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
	"github.com/zhouzirui/items-api/backend/internal/service/events"
)

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// printer renders tables on a terminal and JSON everywhere else.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, forceJSON bool) *printer {
	return &printer{w: w, json: forceJSON || !isTerminal(w)}
}

func (p *printer) items(list []item.Item) error {
	if p.json {
		return p.raw(list)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(p.w, "No items.")
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPRICE")
	for _, it := range list {
		fmt.Fprintf(tw, "%s\t%s\n", it.Name, formatPrice(it.Price))
	}
	return tw.Flush()
}

func (p *printer) item(label string, it item.Item) error {
	if p.json {
		if label == "" {
			return p.raw(it)
		}
		return p.raw(map[string]item.Item{label: it})
	}
	if label != "" {
		fmt.Fprintf(p.w, "%s: ", label)
	}
	_, err := fmt.Fprintf(p.w, "%s %s\n", it.Name, formatPrice(it.Price))
	return err
}

func (p *printer) message(msg string) error {
	if p.json {
		return p.raw(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p *printer) raw(v interface{}) error {
	return json.NewEncoder(p.w).Encode(v)
}

func (p *printer) event(ev events.Event) error {
	if p.json {
		return p.raw(ev)
	}
	when := time.UnixMilli(ev.Timestamp).Format(time.TimeOnly)
	if ev.Item == nil {
		_, err := fmt.Fprintf(p.w, "%s %-7s %s\n", when, ev.Type, ev.Name)
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s %-7s %s -> %s %s\n", when, ev.Type, ev.Name, ev.Item.Name, formatPrice(ev.Item.Price))
	return err
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
