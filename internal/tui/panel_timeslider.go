package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marit/tiledeck/internal/config"
	"github.com/marit/tiledeck/internal/maps"
	"github.com/marit/tiledeck/internal/panel"
	"github.com/marit/tiledeck/internal/playback"
)

// frame is one step of the time series: a label and the URL it expands
// to.
type frame struct {
	label string
	url   string
}

// timeSliderPanel steps a layer through a time series, by hand with the
// slider or on a timer. The playback goroutine delivers ticks through
// the app's message channel; only the UI goroutine touches the layer.
type timeSliderPanel struct {
	ctrl *panel.Controller
	doc  *maps.Map

	frames       []frame
	layer        *maps.Layer
	loop         *playback.Loop
	sliderHandle string
	pos          slider
	focus        int // 0 slider, 1 buttons
	btns         buttonRow
}

func newTimeSliderPanel(doc *maps.Map, ctrl *panel.Controller, cfg config.PlaybackConfig, send func(tea.Msg)) *timeSliderPanel {
	frames := buildFrames(cfg)
	p := &timeSliderPanel{
		ctrl:   ctrl,
		doc:    doc,
		frames: frames,
		pos:    newSlider("Frame", 1, len(frames)),
		btns:   newButtonRow("Play", "Pause", "Close"),
	}

	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	p.loop = playback.NewLoop(len(frames), interval, func(i int) {
		send(frameAdvancedMsg{index: i})
	})

	p.layer = doc.AddTileLayer(frames[0].url, "Time series: "+frames[0].label, "NASA GIBS")
	p.sliderHandle = doc.Attach(maps.Control{Name: "time slider", Position: maps.BottomRight})
	return p
}

// buildFrames expands the frame template for each label. A template
// without the placeholder still yields distinct labels.
func buildFrames(cfg config.PlaybackConfig) []frame {
	labels := cfg.FrameLabels
	if len(labels) == 0 {
		labels = []string{"1"}
	}
	out := make([]frame, len(labels))
	for i, l := range labels {
		out[i] = frame{label: l, url: strings.ReplaceAll(cfg.FrameTemplate, "{t}", l)}
	}
	return out
}

func (p *timeSliderPanel) title() string                 { return "Time slider" }
func (p *timeSliderPanel) icon() string                  { return "tim" }
func (p *timeSliderPanel) controller() *panel.Controller { return p.ctrl }

// teardown stops the playback goroutine for good and removes the frame
// layer and the slider control.
func (p *timeSliderPanel) teardown() {
	p.loop.Close()
	p.doc.RemoveLayer(p.layer)
	p.doc.Detach(p.sliderHandle)
}

func (p *timeSliderPanel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameAdvancedMsg:
		p.applyFrame(msg.index)
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			p.focus = 0
		case "down":
			p.focus = 1
		case " ":
			p.togglePlay()
		case "left", "right":
			if p.focus == 1 {
				if msg.String() == "left" {
					p.btns.prev()
				} else {
					p.btns.next()
				}
				return nil
			}
			p.loop.Pause()
			if msg.String() == "left" {
				p.pos.dec()
			} else {
				p.pos.inc()
			}
			p.loop.SetIndex(p.pos.val)
			p.applyFrame(p.pos.val)
		case "enter":
			if p.focus == 1 {
				return p.press()
			}
		}
	}
	return nil
}

func (p *timeSliderPanel) press() tea.Cmd {
	switch p.btns.value() {
	case "Play":
		p.loop.Play()
	case "Pause":
		p.loop.Pause()
	case "Close":
		return func() tea.Msg { return closePanelMsg{} }
	}
	return nil
}

func (p *timeSliderPanel) togglePlay() {
	if p.loop.Playing() {
		p.loop.Pause()
		return
	}
	p.loop.Play()
}

// applyFrame points the layer at frame i, one-based.
func (p *timeSliderPanel) applyFrame(i int) {
	if i < 1 || i > len(p.frames) {
		return
	}
	f := p.frames[i-1]
	p.pos.set(i)
	p.layer.URL = f.url
	p.layer.Name = "Time series: " + f.label
}

func (p *timeSliderPanel) body(width int) string {
	state := "paused"
	if p.loop.Playing() {
		state = "playing"
	}
	label := p.frames[p.pos.val-1].label
	return lipgloss.JoinVertical(lipgloss.Left,
		p.pos.view(p.focus == 0, width),
		truncate(labelStyle.Render(label+" · "+state+" · space toggles"), width),
		p.btns.view(p.focus == 1, width),
	)
}
