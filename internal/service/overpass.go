package service

import (
	"fmt"
	"strings"
)

// OSMFeatureTags are the tag filters offered by the OSM download panel,
// in dropdown order.
var OSMFeatureTags = []string{
	"amenity=cafe",
	"amenity=restaurant",
	"amenity=hospital",
	"amenity=school",
	"building=yes",
	"highway=bus_stop",
	"leisure=park",
	"shop=supermarket",
	"tourism=hotel",
}

// BuildOverpassQuery composes an Overpass QL query for the given
// key=value tag within a named place. The fetch itself is delegated;
// the panel only shows and copies the query.
func BuildOverpassQuery(tag, place string) string {
	tag = strings.TrimSpace(tag)
	place = strings.TrimSpace(place)
	key, value, _ := strings.Cut(tag, "=")

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n")
	if place != "" {
		fmt.Fprintf(&b, "area[name=%q]->.searchArea;\n", place)
	}
	filter := fmt.Sprintf("[%q]", key)
	if value != "" {
		filter = fmt.Sprintf("[%q=%q]", key, value)
	}
	area := ""
	if place != "" {
		area = "(area.searchArea)"
	}
	fmt.Fprintf(&b, "(\n  node%s%s;\n  way%s%s;\n  relation%s%s;\n);\n", filter, area, filter, area, filter, area)
	b.WriteString("out body;\n>;\nout skel qt;\n")
	return b.String()
}
