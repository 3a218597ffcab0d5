package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()

	state := ConversationState{
		City: &ResolvedCity{City: "Plymouth", StationID: 8446493},
		Date: &ResolvedDate{DisplayText: "Saturday September 9th", QueryParam: "begin_date=20170909&range=24"},
	}

	raw, err := json.Marshal(state.Attributes())
	require.NoError(t, err)

	var attrs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &attrs))

	got := StateFromAttributes(attrs)
	require.NotNil(t, got.City)
	assert.Equal(t, "Plymouth", got.City.City)
	assert.Equal(t, 8446493, got.City.StationID)
	require.NotNil(t, got.Date)
	assert.Equal(t, "begin_date=20170909&range=24", got.Date.QueryParam)
}

func TestStateFromAttributesTolerant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attrs map[string]json.RawMessage
	}{
		{name: "nil bag", attrs: nil},
		{name: "empty bag", attrs: map[string]json.RawMessage{}},
		{
			name: "malformed entries",
			attrs: map[string]json.RawMessage{
				"currentCity": json.RawMessage(`"just a string"`),
				"currentDate": json.RawMessage(`42`),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := StateFromAttributes(tt.attrs)
			assert.Nil(t, state.City)
			assert.Nil(t, state.Date)
		})
	}
}

func TestEmptyStateOmitsAttributes(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ConversationState{}.Attributes())

	city := ResolvedCity{City: "Boston", StationID: 8443970}
	attrs := ConversationState{City: &city}.Attributes()
	require.Len(t, attrs, 1)
	assert.Contains(t, attrs, "currentCity")
}
