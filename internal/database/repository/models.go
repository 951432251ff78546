package repository

import "time"

// Provider categories.
const (
	CategoryBasemap = "basemap"
	CategoryOverlay = "overlay"
)

// Provider sources.
const (
	SourceBuiltin = "builtin"
	SourceUser    = "user"
	SourceQMS     = "qms"
)

// Provider is one XYZ tile service in the catalog.
type Provider struct {
	ID            string
	Name          string
	URL           string
	Attribution   string
	Category      string
	Source        string
	RequiresToken bool
	CreatedAt     time.Time
}
