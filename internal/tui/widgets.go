package tui

import (
	"fmt"
	"strings"
)

// Small form controls shared by the tool panels. Panels keep their own
// focus cursor; a focused control renders with the cursor marker and
// interprets left/right/space.

type dropdown struct {
	label   string
	options []string
	index   int
}

func newDropdown(label string, options []string) dropdown {
	return dropdown{label: label, options: options}
}

func (d *dropdown) value() string {
	if d.index < 0 || d.index >= len(d.options) {
		return ""
	}
	return d.options[d.index]
}

func (d *dropdown) setOptions(options []string) {
	d.options = options
	d.index = 0
}

func (d *dropdown) setValue(v string) {
	for i, opt := range d.options {
		if opt == v {
			d.index = i
			return
		}
	}
}

// next/prev cycle and report whether the value changed.
func (d *dropdown) next() bool {
	if len(d.options) < 2 {
		return false
	}
	d.index = (d.index + 1) % len(d.options)
	return true
}

func (d *dropdown) prev() bool {
	if len(d.options) < 2 {
		return false
	}
	d.index = (d.index - 1 + len(d.options)) % len(d.options)
	return true
}

func (d *dropdown) view(focused bool, width int) string {
	val := d.value()
	if val == "" {
		val = "—"
	}
	line := fmt.Sprintf("%s ‹ %s ›", labelStyle.Render(d.label), val)
	if focused {
		line = cursorStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return truncate(line, width)
}

type checkbox struct {
	label   string
	checked bool
}

func (c *checkbox) toggle() { c.checked = !c.checked }

func (c *checkbox) view(focused bool, width int) string {
	box := "[ ]"
	if c.checked {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s", box, c.label)
	if focused {
		line = cursorStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return truncate(line, width)
}

// slider is a bounded int control rendered as a bar with a readout.
type slider struct {
	label    string
	min, max int
	val      int
}

func newSlider(label string, min, max int) slider {
	return slider{label: label, min: min, max: max, val: min}
}

func (s *slider) set(v int) {
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	s.val = v
}

func (s *slider) inc() { s.set(s.val + 1) }
func (s *slider) dec() { s.set(s.val - 1) }

func (s *slider) view(focused bool, width int) string {
	const barWidth = 14
	span := s.max - s.min
	filled := 0
	if span > 0 {
		filled = (s.val - s.min) * barWidth / span
	}
	bar := strings.Repeat("─", filled) + "●" + strings.Repeat("─", barWidth-filled)
	line := fmt.Sprintf("%s %s %d/%d", labelStyle.Render(s.label), bar, s.val, s.max)
	if focused {
		line = cursorStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return truncate(line, width)
}

// buttonRow is an Apply/Reset/Close style toggle-button strip.
type buttonRow struct {
	options []string
	index   int
}

func newButtonRow(options ...string) buttonRow {
	return buttonRow{options: options}
}

func (b *buttonRow) next() { b.index = (b.index + 1) % len(b.options) }
func (b *buttonRow) prev() { b.index = (b.index - 1 + len(b.options)) % len(b.options) }

func (b *buttonRow) value() string { return b.options[b.index] }

func (b *buttonRow) view(focused bool, width int) string {
	var parts []string
	for i, opt := range b.options {
		s := " " + opt + " "
		if focused && i == b.index {
			s = selectedStyle.Render(s)
		}
		parts = append(parts, s)
	}
	line := strings.Join(parts, " ")
	if focused {
		line = cursorStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return truncate(line, width)
}
