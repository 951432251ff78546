package service

import "fmt"

// CensusSource is one TIGERweb WMS endpoint and its selectable layers.
type CensusSource struct {
	Name   string
	URL    string
	Layers []string
}

// censusSources mirrors the TIGERweb service catalog; order is the
// panel's dropdown order.
var censusSources = []CensusSource{
	{
		Name: "Census 2020",
		URL:  "https://tigerweb.geo.census.gov/arcgis/services/TIGERweb/tigerWMS_Census2020/MapServer/WMSServer",
		Layers: []string{
			"States", "Counties", "Census Tracts", "Census Block Groups",
			"Census Blocks", "Urban Areas", "Congressional Districts",
		},
	},
	{
		Name: "Census 2010",
		URL:  "https://tigerweb.geo.census.gov/arcgis/services/TIGERweb/tigerWMS_Census2010/MapServer/WMSServer",
		Layers: []string{
			"States", "Counties", "Census Tracts", "Census Block Groups",
			"Urban Areas",
		},
	},
	{
		Name: "Current",
		URL:  "https://tigerweb.geo.census.gov/arcgis/services/TIGERweb/tigerWMS_Current/MapServer/WMSServer",
		Layers: []string{
			"States", "Counties", "County Subdivisions", "Incorporated Places",
			"Census Designated Places", "School Districts",
		},
	},
	{
		Name: "Physical Features",
		URL:  "https://tigerweb.geo.census.gov/arcgis/services/TIGERweb/tigerWMS_PhysicalFeatures/MapServer/WMSServer",
		Layers: []string{
			"Rails", "Roads", "Hydrography", "Landmarks",
		},
	},
}

// CensusSourceNames returns the dropdown options in catalog order.
func CensusSourceNames() []string {
	out := make([]string, len(censusSources))
	for i, s := range censusSources {
		out[i] = s.Name
	}
	return out
}

// CensusLayers returns the layer options for a source, or nil for an
// unknown source.
func CensusLayers(source string) []string {
	for _, s := range censusSources {
		if s.Name == source {
			return append([]string(nil), s.Layers...)
		}
	}
	return nil
}

// CensusLayerURL builds the WMS GetMap URL template for a source/layer
// pair, or "" for an unknown source. WMS construction proper is the map
// renderer's concern; this is just the request template the layer
// carries.
func CensusLayerURL(source, layer string) string {
	for _, s := range censusSources {
		if s.Name == source {
			return fmt.Sprintf("%s?service=WMS&request=GetMap&version=1.1.1&format=image/png&transparent=true&layers=%s&width=256&height=256&srs=EPSG:3857&bbox={bbox-epsg-3857}", s.URL, layer)
		}
	}
	return ""
}

// CensusLayerName is the map-layer name for a source/layer pair, used
// both to add and to replace the existing census layer.
func CensusLayerName(source, layer string) string {
	return fmt.Sprintf("%s - %s", source, layer)
}
