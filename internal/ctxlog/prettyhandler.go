// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/yaam/internal/color"
)

var (
	// ErrMarshalAttribute is returned when the attributes of a record cannot be rendered.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when a record cannot be written to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

var _ slog.Handler = (*PrettyHandler)(nil)

// PrettyHandler writes one human readable line per record:
// timestamp, level, message and the attributes as compact JSON.
type PrettyHandler struct {
	opts   slog.HandlerOptions
	preset []presetAttrs
	groups []string
	mu     *sync.Mutex
	writer io.Writer
	colour bool
}

// presetAttrs are attributes added with WithAttrs, under the groups open at the time.
type presetAttrs struct {
	groups []string
	attrs  []slog.Attr
}

// Option configures a PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the writer records are written to. The default is os.Stderr.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour forces coloured output.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colour when the color package detects a capable terminal.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// NewPrettyHandler creates a PrettyHandler. handlerOptions may be nil.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	h := &PrettyHandler{
		mu:     &sync.Mutex{},
		writer: os.Stderr,
	}

	if handlerOptions != nil {
		h.opts = *handlerOptions
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	h2 := h.clone()
	h2.preset = append(h2.preset, presetAttrs{groups: slices.Clone(h.groups), attrs: attrs})

	return h2
}

// WithGroup implements slog.Handler.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := h.clone()
	h2.groups = append(h2.groups, name)

	return h2
}

func (h *PrettyHandler) clone() *PrettyHandler {
	h2 := *h
	h2.preset = slices.Clip(h.preset)
	h2.groups = slices.Clip(h.groups)

	return &h2
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)

	for _, p := range h.preset {
		h.addAttrs(groupMap(attrs, p.groups), p.groups, p.attrs)
	}

	recordAttrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		recordAttrs = append(recordAttrs, a)
		return true
	})

	h.addAttrs(groupMap(attrs, h.groups), h.groups, recordAttrs)

	line := strings.Builder{}

	if ts := h.builtin(slog.TimeKey, slog.TimeValue(r.Time)); ts != "" {
		line.WriteString(h.paint(ts, color.FgWhite))
		line.WriteString(" ")
	}

	if lvl := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); lvl != "" {
		line.WriteString(h.paint(lvl+":", levelColour(r.Level)))
		line.WriteString(" ")
	}

	if msg := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); msg != "" {
		line.WriteString(h.paint(msg, color.FgHiWhite))
	}

	if len(attrs) > 0 {
		f := colorjson.NewFormatter()
		if !h.colour {
			f.DisabledColor = true
			f.KeyColor.DisableColor()
		}

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		line.WriteString(" ")
		line.Write(b)
	}

	line.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.writer, line.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin renders the time, level or message of a record, honouring ReplaceAttr.
// An empty string means the attribute was dropped.
func (h *PrettyHandler) builtin(key string, v slog.Value) string {
	a := slog.Attr{Key: key, Value: v}
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return ""
	}

	if a.Value.Kind() == slog.KindTime {
		return a.Value.Time().Format(TimeFormat)
	}

	return a.Value.String()
}

func (h *PrettyHandler) addAttrs(dst map[string]any, groups []string, attrs []slog.Attr) {
	for _, a := range attrs {
		if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			a = h.opts.ReplaceAttr(groups, a)
		}

		a.Value = a.Value.Resolve()

		if a.Equal(slog.Attr{}) {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			target := dst
			if a.Key != "" {
				target = groupMap(dst, []string{a.Key})
			}

			h.addAttrs(target, append(slices.Clip(groups), a.Key), a.Value.Group())

			continue
		}

		dst[a.Key] = jsonValue(a.Value)
	}
}

// groupMap returns the nested map for groups, creating it as needed.
func groupMap(m map[string]any, groups []string) map[string]any {
	for _, g := range groups {
		next, ok := m[g].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[g] = next
		}

		m = next
	}

	return m
}

// jsonValue converts a slog value to a type colorjson can render.
func jsonValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindBool:
		return v.Bool()
	case slog.KindInt64:
		return json.Number(fmt.Sprint(v.Int64()))
	case slog.KindUint64:
		return json.Number(fmt.Sprint(v.Uint64()))
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	}

	switch x := v.Any().(type) {
	case nil:
		return nil
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case []string:
		out := make([]any, 0, len(x))
		for _, s := range x {
			out = append(out, s)
		}

		return out
	default:
		return fmt.Sprint(x)
	}
}

func levelColour(level slog.Level) color.Code {
	switch {
	case level <= slog.LevelDebug:
		return color.FgWhite
	case level < slog.LevelWarn:
		return color.FgCyan
	case level < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func (h *PrettyHandler) paint(s string, code color.Code) string {
	if !h.colour {
		return s
	}

	return color.Paint(s, code)
}
