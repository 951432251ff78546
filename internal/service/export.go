package service

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// ExportType selects the save-map output format.
type ExportType string

const (
	ExportHTML ExportType = "HTML"
	ExportJSON ExportType = "JSON"
	ExportTXT  ExportType = "TXT"
)

// ExportTypes in panel display order.
func ExportTypes() []ExportType {
	return []ExportType{ExportHTML, ExportJSON, ExportTXT}
}

// Ext returns the expected filename extension, dot included.
func (t ExportType) Ext() string {
	return "." + strings.ToLower(string(t))
}

// DefaultFilename swaps the default name's extension per type.
func (t ExportType) DefaultFilename() string {
	return "my_map" + t.Ext()
}

// Mismatch returns the in-panel label to show when the chosen filename
// does not match the chosen export type, or "" when they agree. A
// mismatch is user feedback, never an error.
func Mismatch(t ExportType, path string) string {
	if strings.EqualFold(filepath.Ext(path), t.Ext()) {
		return ""
	}
	return "The selected file extension does not match the selected exporting type."
}

// ExportLayer is a layer's state as written to an export.
type ExportLayer struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Attribution string  `json:"attribution"`
	Visible     bool    `json:"visible"`
	Opacity     float64 `json:"opacity"`
}

// Document is the exportable snapshot of the map.
type Document struct {
	Title    string        `json:"title"`
	CenterY  float64       `json:"center_lat"`
	CenterX  float64       `json:"center_lon"`
	Zoom     int           `json:"zoom"`
	Layers   []ExportLayer `json:"layers"`
	Snapshot string        `json:"-"` // rendered viewport, TXT export only
}

var htmlTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterY}}, {{.CenterX}}], {{.Zoom}});
{{- range .Layers}}
{{- if .Visible}}
L.tileLayer({{.URL}}, {attribution: {{.Attribution}}, opacity: {{.Opacity}}}).addTo(map);
{{- end}}
{{- end}}
</script>
</body>
</html>
`))

// Exporter writes map snapshots to disk.
type Exporter struct {
	// Dir is prepended to relative paths.
	Dir string
}

// Export writes doc at path in the requested format. The caller is
// expected to have surfaced any type/extension mismatch already;
// Export still refuses one rather than write a mislabeled file.
func (e *Exporter) Export(t ExportType, path string, doc Document) error {
	if msg := Mismatch(t, path); msg != "" {
		return fmt.Errorf("export %s: %s", path, strings.ToLower(strings.TrimSuffix(msg, ".")))
	}
	if !filepath.IsAbs(path) && e.Dir != "" {
		path = filepath.Join(e.Dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}

	switch t {
	case ExportHTML:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := htmlTemplate.Execute(f, doc); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		return nil
	case ExportJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(path, append(data, '\n'), 0o644)
	case ExportTXT:
		return os.WriteFile(path, []byte(doc.Snapshot), 0o644)
	default:
		return fmt.Errorf("unknown export type %q", t)
	}
}
