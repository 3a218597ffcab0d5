package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	dir, err := DefaultDirectory("Boston")
	require.NoError(t, err)

	want, ok := dir.Lookup("Plymouth")
	require.True(t, ok)

	for _, spelling := range []string{"plymouth", "PLYMOUTH", "pLyMoUtH", "  Plymouth  "} {
		got, ok := dir.Lookup(spelling)
		require.True(t, ok, "spelling %q should match", spelling)
		assert.Equal(t, want.ID, got.ID)
	}
}

func TestLookupUnknownCity(t *testing.T) {
	t.Parallel()

	dir, err := DefaultDirectory("Boston")
	require.NoError(t, err)

	_, ok := dir.Lookup("Nowhereville")
	assert.False(t, ok)
}

func TestCityNamesOrder(t *testing.T) {
	t.Parallel()

	dir, err := NewDirectory([]models.Station{
		{City: "Plymouth", ID: 8446493},
		{City: "Boston", ID: 8443970},
		{City: "Chatham", ID: 8447435},
	}, "Boston")
	require.NoError(t, err)

	assert.Equal(t, []string{"Plymouth", "Boston", "Chatham"}, dir.CityNames())
}

func TestNewDirectoryValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		list        []models.Station
		defaultCity string
		wantErr     string
	}{
		{
			name:        "default city missing",
			list:        []models.Station{{City: "Plymouth", ID: 8446493}},
			defaultCity: "Boston",
			wantErr:     "not in directory",
		},
		{
			name:        "non-positive station id",
			list:        []models.Station{{City: "Plymouth", ID: 0}},
			defaultCity: "Plymouth",
			wantErr:     "non-positive",
		},
		{
			name: "duplicate city ignoring case",
			list: []models.Station{
				{City: "Plymouth", ID: 8446493},
				{City: "plymouth", ID: 8446494},
			},
			defaultCity: "Plymouth",
			wantErr:     "duplicate",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewDirectory(tt.list, tt.defaultCity)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultStation(t *testing.T) {
	t.Parallel()

	dir, err := DefaultDirectory("Boston")
	require.NoError(t, err)

	station := dir.Default()
	assert.Equal(t, "Boston", station.City)
	assert.Positive(t, station.ID)
}
