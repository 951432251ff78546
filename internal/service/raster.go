package service

import (
	"strconv"
	"strings"
)

// RasterOptions are the numeric display settings for a raster layer.
// Nil fields are unset and left to the renderer's defaults.
type RasterOptions struct {
	Band   *int
	VMin   *float64
	VMax   *float64
	NoData *float64
}

// ParseRasterOptions parses the raster panel's free-text entries
// best-effort: a field that fails to parse stays unset, and its name is
// returned so the panel can show a notice. Empty fields are simply
// unset and not reported.
func ParseRasterOptions(band, vmin, vmax, nodata string) (RasterOptions, []string) {
	var (
		opts    RasterOptions
		ignored []string
	)

	if s := strings.TrimSpace(band); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			opts.Band = &v
		} else {
			ignored = append(ignored, "band")
		}
	}
	if v, ok := parseFloatField(vmin, "vmin", &ignored); ok {
		opts.VMin = v
	}
	if v, ok := parseFloatField(vmax, "vmax", &ignored); ok {
		opts.VMax = v
	}
	if v, ok := parseFloatField(nodata, "nodata", &ignored); ok {
		opts.NoData = v
	}
	return opts, ignored
}

func parseFloatField(s, name string, ignored *[]string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*ignored = append(*ignored, name)
		return nil, false
	}
	return &v, true
}
