package skill

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heemps/Cape-Cod-Tides/internal/alexa"
	"github.com/Heemps/Cape-Cod-Tides/internal/models"
	"github.com/Heemps/Cape-Cod-Tides/internal/stations"
	"github.com/Heemps/Cape-Cod-Tides/internal/tide"
)

const plymouthStation = 8446493

// mockFetcher records calls and plays back a canned series or error.
type mockFetcher struct {
	calls     int
	stationID int
	dateQuery string
	err       error
}

func (m *mockFetcher) Predictions(_ context.Context, stationID int, dateQuery string) ([]models.TidePrediction, error) {
	m.calls++
	m.stationID = stationID
	m.dateQuery = dateQuery
	if m.err != nil {
		return nil, m.err
	}

	start := time.Date(2017, 9, 9, 5, 0, 0, 0, time.UTC)
	heights := []float64{1.0, 2.5, 4.0, 3.0, 1.5, 0.5, 2.0, 4.5, 6.0, 5.0, 3.0}
	predictions := make([]models.TidePrediction, len(heights))
	for i, h := range heights {
		predictions[i] = models.TidePrediction{Time: start.Add(time.Duration(i) * time.Hour), Height: h}
	}
	return predictions, nil
}

func newTestOrchestrator(t *testing.T, fetcher tide.Fetcher) *Orchestrator {
	t.Helper()
	dir, err := stations.DefaultDirectory("Boston")
	require.NoError(t, err)
	return New(dir, fetcher)
}

func intentRequest(name string, slots map[string]string, attrs map[string]json.RawMessage) alexa.RequestEnvelope {
	intent := alexa.Intent{Name: name, Slots: map[string]alexa.Slot{}}
	for slotName, value := range slots {
		intent.Slots[slotName] = alexa.Slot{Name: slotName, Value: value}
	}
	return alexa.RequestEnvelope{
		Version: "1.0",
		Session: alexa.Session{SessionID: "amzn1.echo-api.session.test", Attributes: attrs},
		Request: alexa.Request{Type: alexa.RequestTypeIntent, Intent: intent},
	}
}

// carryState converts a response's session attributes into the inbound
// attribute bag of the next turn, the way the platform does.
func carryState(t *testing.T, env alexa.ResponseEnvelope) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(env.SessionAttributes)
	require.NoError(t, err)
	var attrs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &attrs))
	return attrs
}

func TestOneshotUnknownCityMakesNoFetch(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)

	env, err := orch.HandleRequest(context.Background(),
		intentRequest("OneshotTideIntent", map[string]string{"City": "Nowhereville", "Date": "Saturday"}, nil))
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls, "city failure must short-circuit the fetch")
	assert.False(t, env.Response.ShouldEndSession, "session stays open for the re-prompt")
	require.NotNil(t, env.Response.OutputSpeech)
	assert.Contains(t, env.Response.OutputSpeech.Text, "Nowhereville")
	assert.Contains(t, env.Response.OutputSpeech.Text, "Plymouth", "re-prompt lists supported towns")
	assert.Contains(t, env.Response.OutputSpeech.Text, "Provincetown")
	assert.Nil(t, env.SessionAttributes, "no state stored after a one-shot city failure")
}

func TestOneshotBothSlotsResolved(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)

	env, err := orch.HandleRequest(context.Background(),
		intentRequest("OneshotTideIntent", map[string]string{"City": "Plymouth", "Date": "2017-09-09"}, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, plymouthStation, fetcher.stationID)
	assert.Equal(t, "begin_date=20170909&range=24", fetcher.dateQuery)

	assert.True(t, env.Response.ShouldEndSession)
	require.NotNil(t, env.Response.OutputSpeech)
	assert.Contains(t, env.Response.OutputSpeech.Text, "Saturday September 9th")
	assert.Contains(t, env.Response.OutputSpeech.Text, "Plymouth")
	assert.Contains(t, env.Response.OutputSpeech.Text, "four feet")
	require.NotNil(t, env.Response.Card)
	assert.Equal(t, "Tides for Plymouth", env.Response.Card.Title)
}

func TestOneshotDefaultsCity(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)

	env, err := orch.HandleRequest(context.Background(),
		intentRequest("OneshotTideIntent", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 8443970, fetcher.stationID, "no city slot defaults to Boston")
	assert.Equal(t, "date=today", fetcher.dateQuery)
	assert.Contains(t, env.Response.OutputSpeech.Text, "Today in Boston")
}

func TestOneshotBadDateStoresCityAndAsks(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)

	env, err := orch.HandleRequest(context.Background(),
		intentRequest("OneshotTideIntent", map[string]string{"City": "Plymouth", "Date": "not a date"}, nil))
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls)
	assert.False(t, env.Response.ShouldEndSession)
	assert.Contains(t, env.Response.OutputSpeech.Text, "date")
	require.NotNil(t, env.SessionAttributes["currentCity"], "resolved city is kept for the next turn")
}

func TestMultiTurnCityThenDate(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)
	ctx := context.Background()

	// Turn 1: city only.
	turn1, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"City": "Plymouth"}, nil))
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls)
	assert.False(t, turn1.Response.ShouldEndSession)
	assert.Contains(t, turn1.Response.OutputSpeech.Text, "For which date")

	// Turn 2: date completes the slots.
	turn2, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"Date": "2017-09-09"}, carryState(t, turn1)))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls, "READY triggers exactly one fetch")
	assert.Equal(t, plymouthStation, fetcher.stationID)
	assert.Equal(t, "begin_date=20170909&range=24", fetcher.dateQuery)
	assert.True(t, turn2.Response.ShouldEndSession)
}

func TestMultiTurnDateBeforeCity(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)
	ctx := context.Background()

	// Out-of-turn: the user answers with a date first.
	turn1, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"Date": "2017-09-09"}, nil))
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls)
	assert.Contains(t, turn1.Response.OutputSpeech.Text, "Which town")
	require.NotNil(t, turn1.SessionAttributes["currentDate"])

	turn2, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"City": "Chatham"}, carryState(t, turn1)))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 8447435, fetcher.stationID)
	assert.Equal(t, "begin_date=20170909&range=24", fetcher.dateQuery)
	assert.True(t, turn2.Response.ShouldEndSession)
}

func TestMultiTurnUnknownCityKeepsState(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)
	ctx := context.Background()

	turn1, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"Date": "2017-09-09"}, nil))
	require.NoError(t, err)

	turn2, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"City": "Springfield"}, carryState(t, turn1)))
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls)
	assert.Contains(t, turn2.Response.OutputSpeech.Text, "Springfield")
	require.NotNil(t, turn2.SessionAttributes["currentDate"], "stored date survives a bad city answer")
}

func TestMultiTurnNoSlots(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{}
	orch := newTestOrchestrator(t, fetcher)
	ctx := context.Background()

	// Nothing stored yet: re-issue the supported towns prompt.
	empty, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", nil, nil))
	require.NoError(t, err)
	assert.Contains(t, empty.Response.OutputSpeech.Text, "Boston")
	assert.Contains(t, empty.Response.OutputSpeech.Text, "Which town")

	// City stored: re-prompt for the date instead.
	withCity, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", map[string]string{"City": "Plymouth"}, nil))
	require.NoError(t, err)

	again, err := orch.HandleRequest(ctx,
		intentRequest("DialogTideIntent", nil, carryState(t, withCity)))
	require.NoError(t, err)
	assert.Contains(t, again.Response.OutputSpeech.Text, "For which date")
	assert.Equal(t, 0, fetcher.calls)
}

func TestFetchFailuresCollapseToOneMessage(t *testing.T) {
	t.Parallel()

	causes := []error{
		errors.New("fetching predictions: connection refused"),
		tide.NewNoaaAPIError("unexpected status 503", nil),
		tide.NewNoaaAPIError("No Predictions data was found.", nil),
	}

	var messages []string
	for _, cause := range causes {
		orch := newTestOrchestrator(t, &mockFetcher{err: cause})
		env, err := orch.HandleRequest(context.Background(),
			intentRequest("OneshotTideIntent", map[string]string{"City": "Plymouth"}, nil))
		require.NoError(t, err)
		require.NotNil(t, env.Response.OutputSpeech)
		assert.True(t, env.Response.ShouldEndSession)
		messages = append(messages, env.Response.OutputSpeech.Text)
	}

	assert.Equal(t, messages[0], messages[1], "all failure causes sound identical")
	assert.Equal(t, messages[1], messages[2])
	assert.Contains(t, messages[0], "experiencing a problem")
}

func TestMalformedSeriesSoundsLikeServiceProblem(t *testing.T) {
	t.Parallel()

	fetcher := &flatFetcher{}
	orch := newTestOrchestrator(t, fetcher)

	env, err := orch.HandleRequest(context.Background(),
		intentRequest("OneshotTideIntent", map[string]string{"City": "Plymouth"}, nil))
	require.NoError(t, err)
	assert.Contains(t, env.Response.OutputSpeech.Text, "experiencing a problem")
	assert.True(t, env.Response.ShouldEndSession)
}

// flatFetcher returns a series with no reversals at all.
type flatFetcher struct{}

func (f *flatFetcher) Predictions(_ context.Context, _ int, _ string) ([]models.TidePrediction, error) {
	start := time.Date(2017, 9, 9, 0, 0, 0, 0, time.UTC)
	predictions := make([]models.TidePrediction, 10)
	for i := range predictions {
		predictions[i] = models.TidePrediction{Time: start.Add(time.Duration(i) * time.Hour), Height: 2.0}
	}
	return predictions, nil
}

func TestLaunchAndSessionEnded(t *testing.T) {
	t.Parallel()

	orch := newTestOrchestrator(t, &mockFetcher{})
	ctx := context.Background()

	launch, err := orch.HandleRequest(ctx, alexa.RequestEnvelope{
		Request: alexa.Request{Type: alexa.RequestTypeLaunch},
		Session: alexa.Session{New: true},
	})
	require.NoError(t, err)
	assert.False(t, launch.Response.ShouldEndSession)
	assert.Contains(t, launch.Response.OutputSpeech.Text, "Welcome")
	require.NotNil(t, launch.Response.Reprompt)

	ended, err := orch.HandleRequest(ctx, alexa.RequestEnvelope{
		Request: alexa.Request{Type: alexa.RequestTypeSessionEnded, Reason: "USER_INITIATED"},
	})
	require.NoError(t, err)
	assert.True(t, ended.Response.ShouldEndSession)
	assert.Nil(t, ended.Response.OutputSpeech)
}

func TestBuiltinIntents(t *testing.T) {
	t.Parallel()

	orch := newTestOrchestrator(t, &mockFetcher{})
	ctx := context.Background()

	tests := []struct {
		intent      string
		wantEnd     bool
		wantContain string
	}{
		{intent: "AMAZON.HelpIntent", wantEnd: false, wantContain: "Plymouth"},
		{intent: "AMAZON.StopIntent", wantEnd: true, wantContain: "Goodbye"},
		{intent: "AMAZON.CancelIntent", wantEnd: true, wantContain: "Goodbye"},
		{intent: "SupportedCitiesIntent", wantEnd: false, wantContain: "Woods Hole"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.intent, func(t *testing.T) {
			t.Parallel()

			env, err := orch.HandleRequest(ctx, intentRequest(tt.intent, nil, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, env.Response.ShouldEndSession)
			assert.Contains(t, env.Response.OutputSpeech.Text, tt.wantContain)
		})
	}
}
