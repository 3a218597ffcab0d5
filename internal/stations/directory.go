// Package stations holds the town directory: the static mapping from a
// Cape Cod town name to the NOAA station that covers it.
package stations

import (
	"fmt"
	"strings"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// Directory is the immutable town-to-station table, loaded once at startup.
// Lookups are case-insensitive exact matches; there is no fuzzy matching.
type Directory struct {
	entries     map[string]models.Station
	order       []string
	defaultCity string
}

// NewDirectory builds a directory from a station list. The default city must
// appear in the list and every station ID must be positive.
func NewDirectory(list []models.Station, defaultCity string) (*Directory, error) {
	d := &Directory{
		entries:     make(map[string]models.Station, len(list)),
		order:       make([]string, 0, len(list)),
		defaultCity: defaultCity,
	}
	for _, s := range list {
		if s.ID <= 0 {
			return nil, fmt.Errorf("station %q has non-positive id %d", s.City, s.ID)
		}
		key := foldCity(s.City)
		if _, exists := d.entries[key]; exists {
			return nil, fmt.Errorf("duplicate city %q", s.City)
		}
		d.entries[key] = s
		d.order = append(d.order, s.City)
	}
	if _, ok := d.entries[foldCity(defaultCity)]; !ok {
		return nil, fmt.Errorf("default city %q not in directory", defaultCity)
	}
	return d, nil
}

// Lookup finds the station for a town, folding case before matching.
func (d *Directory) Lookup(city string) (models.Station, bool) {
	s, ok := d.entries[foldCity(city)]
	return s, ok
}

// Default returns the station for the configured default town.
func (d *Directory) Default() models.Station {
	return d.entries[foldCity(d.defaultCity)]
}

// CityNames lists the known towns in directory order, for prompts.
func (d *Directory) CityNames() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

func foldCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

var defaultStations = []models.Station{
	{City: "Boston", ID: 8443970},
	{City: "Plymouth", ID: 8446493},
	{City: "Provincetown", ID: 8446121},
	{City: "Wellfleet", ID: 8446613},
	{City: "Sandwich", ID: 8447241},
	{City: "Barnstable", ID: 8447335},
	{City: "Chatham", ID: 8447435},
	{City: "Dennis Port", ID: 8447525},
	{City: "Falmouth", ID: 8447865},
	{City: "Woods Hole", ID: 8447930},
}

// DefaultDirectory returns the compiled-in town table.
func DefaultDirectory(defaultCity string) (*Directory, error) {
	return NewDirectory(defaultStations, defaultCity)
}
