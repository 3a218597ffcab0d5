// Package resolve turns raw slot values into validated cities and dates.
// Both resolvers are pure functions over their inputs.
package resolve

import (
	"errors"
	"fmt"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
	"github.com/Heemps/Cape-Cod-Tides/internal/stations"
)

// ErrMissingCity means no city was supplied where one was required.
var ErrMissingCity = errors.New("no city provided")

// UnknownCityError carries the unmatched city text so the caller can echo
// it back to the user. Raw is empty when nothing usable was supplied.
type UnknownCityError struct {
	Raw string
}

func (e *UnknownCityError) Error() string {
	return fmt.Sprintf("unknown city %q", e.Raw)
}

// City resolves an optional city slot against the directory.
//
// With no value and allowDefault set, the directory's default town is used.
// With no value and allowDefault unset, ErrMissingCity is returned. A
// supplied value is matched case-insensitively; a miss returns
// UnknownCityError carrying the raw text.
func City(dir *stations.Directory, slot *string, allowDefault bool) (models.ResolvedCity, error) {
	if slot == nil {
		if !allowDefault {
			return models.ResolvedCity{}, ErrMissingCity
		}
		station := dir.Default()
		return models.ResolvedCity{City: station.City, StationID: station.ID}, nil
	}

	station, ok := dir.Lookup(*slot)
	if !ok {
		return models.ResolvedCity{}, &UnknownCityError{Raw: *slot}
	}
	return models.ResolvedCity{City: station.City, StationID: station.ID}, nil
}
