// Package skill is the dialog orchestrator: it dispatches inbound intents,
// tracks which of the city and date slots are still missing across turns,
// and triggers the single tide fetch once both are resolved.
package skill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Heemps/Cape-Cod-Tides/internal/alexa"
	"github.com/Heemps/Cape-Cod-Tides/internal/models"
	"github.com/Heemps/Cape-Cod-Tides/internal/resolve"
	"github.com/Heemps/Cape-Cod-Tides/internal/stations"
	"github.com/Heemps/Cape-Cod-Tides/internal/tide"
)

const (
	slotCity = "City"
	slotDate = "Date"

	whichCityPrompt = "Which town would you like tide information for?"
	whichDatePrompt = "For which date would you like tide information?"

	// Every fetch or extraction failure collapses to this one message; the
	// user never hears internal detail.
	serviceProblemSpeech = "Sorry, the National Oceanic tide service is " +
		"experiencing a problem at the moment. Please try again later."
)

type intentHandler func(ctx context.Context, intent alexa.Intent, state models.ConversationState) alexa.ResponseEnvelope

// Orchestrator routes skill requests through a dispatch table, one handler
// per intent name.
type Orchestrator struct {
	directory *stations.Directory
	tides     tide.Fetcher
	handlers  map[string]intentHandler
}

func New(directory *stations.Directory, tides tide.Fetcher) *Orchestrator {
	o := &Orchestrator{
		directory: directory,
		tides:     tides,
	}
	o.handlers = map[string]intentHandler{
		"OneshotTideIntent":     o.handleOneshot,
		"DialogTideIntent":      o.handleDialog,
		"SupportedCitiesIntent": o.handleSupportedCities,
		"AMAZON.HelpIntent":     o.handleHelp,
		"AMAZON.StopIntent":     o.handleGoodbye,
		"AMAZON.CancelIntent":   o.handleGoodbye,
	}
	return o
}

// HandleRequest is the Lambda entry point. Every code path produces a
// response; the error return exists only to satisfy the runtime signature.
func (o *Orchestrator) HandleRequest(ctx context.Context, env alexa.RequestEnvelope) (alexa.ResponseEnvelope, error) {
	log.Info().
		Str("request_type", env.Request.Type).
		Str("intent", env.Request.Intent.Name).
		Bool("new_session", env.Session.New).
		Msg("Handling skill request")

	switch env.Request.Type {
	case alexa.RequestTypeLaunch:
		return o.handleStart(), nil
	case alexa.RequestTypeSessionEnded:
		return alexa.End(), nil
	case alexa.RequestTypeIntent:
		state := models.StateFromAttributes(env.Session.Attributes)
		if handler, ok := o.handlers[env.Request.Intent.Name]; ok {
			return handler(ctx, env.Request.Intent, state), nil
		}
		log.Warn().Str("intent", env.Request.Intent.Name).Msg("Unrecognized intent")
		return alexa.Ask("I'm sorry, I didn't understand that. "+whichCityPrompt, whichCityPrompt), nil
	default:
		log.Warn().Str("request_type", env.Request.Type).Msg("Unrecognized request type")
		return alexa.End(), nil
	}
}

func (o *Orchestrator) handleStart() alexa.ResponseEnvelope {
	speech := "Welcome to Cape Cod Tides. " + whichCityPrompt
	return alexa.Ask(speech, whichCityPrompt)
}

// handleOneshot covers a single utterance carrying any combination of city
// and date. City is validated first; a city failure short-circuits the date.
func (o *Orchestrator) handleOneshot(ctx context.Context, intent alexa.Intent, _ models.ConversationState) alexa.ResponseEnvelope {
	city, err := resolve.City(o.directory, intent.SlotValue(slotCity), true)
	if err != nil {
		// No state stored: the user restarts via dialog.
		return alexa.Ask(o.unknownCitySpeech(err), whichCityPrompt)
	}

	date, err := resolve.Date(intent.SlotValue(slotDate))
	if err != nil {
		state := models.ConversationState{City: &city}
		speech := "I'm sorry, I didn't understand that date. " + whichDatePrompt
		return alexa.Ask(speech, whichDatePrompt).WithState(state.Attributes())
	}

	return o.finalResponse(ctx, city, date)
}

// handleDialog covers the multi-turn collection path. Which branch runs is
// decided by which slot the turn populated.
func (o *Orchestrator) handleDialog(ctx context.Context, intent alexa.Intent, state models.ConversationState) alexa.ResponseEnvelope {
	citySlot := intent.SlotValue(slotCity)
	dateSlot := intent.SlotValue(slotDate)

	switch {
	case citySlot != nil:
		return o.handleCityDialog(ctx, citySlot, state)
	case dateSlot != nil:
		return o.handleDateDialog(ctx, dateSlot, state)
	default:
		return o.handleNoSlotDialog(state)
	}
}

func (o *Orchestrator) handleCityDialog(ctx context.Context, citySlot *string, state models.ConversationState) alexa.ResponseEnvelope {
	city, err := resolve.City(o.directory, citySlot, false)
	if err != nil {
		return alexa.Ask(o.unknownCitySpeech(err), whichCityPrompt).WithState(state.Attributes())
	}

	if state.Date != nil {
		return o.finalResponse(ctx, city, *state.Date)
	}

	state.City = &city
	return alexa.Ask(whichDatePrompt, whichDatePrompt).WithState(state.Attributes())
}

func (o *Orchestrator) handleDateDialog(ctx context.Context, dateSlot *string, state models.ConversationState) alexa.ResponseEnvelope {
	date, err := resolve.Date(dateSlot)
	if err != nil {
		speech := "I'm sorry, I didn't understand that date. " + whichDatePrompt
		return alexa.Ask(speech, whichDatePrompt).WithState(state.Attributes())
	}

	if state.City != nil {
		return o.finalResponse(ctx, *state.City, date)
	}

	// Date arrived before the city did.
	state.Date = &date
	return alexa.Ask(whichCityPrompt, whichCityPrompt).WithState(state.Attributes())
}

func (o *Orchestrator) handleNoSlotDialog(state models.ConversationState) alexa.ResponseEnvelope {
	if state.City != nil {
		return alexa.Ask(whichDatePrompt, whichDatePrompt).WithState(state.Attributes())
	}
	return o.handleSupportedCities(context.Background(), alexa.Intent{}, state)
}

func (o *Orchestrator) handleSupportedCities(_ context.Context, _ alexa.Intent, state models.ConversationState) alexa.ResponseEnvelope {
	speech := o.supportedCitiesSpeech() + " " + whichCityPrompt
	return alexa.Ask(speech, whichCityPrompt).WithState(state.Attributes())
}

func (o *Orchestrator) handleHelp(_ context.Context, _ alexa.Intent, _ models.ConversationState) alexa.ResponseEnvelope {
	speech := "You can ask for tide information for a Cape Cod area town, " +
		"for example: when is high tide in Plymouth this Saturday. " +
		o.supportedCitiesSpeech() + " " + whichCityPrompt
	return alexa.Ask(speech, whichCityPrompt)
}

func (o *Orchestrator) handleGoodbye(_ context.Context, _ alexa.Intent, _ models.ConversationState) alexa.ResponseEnvelope {
	return alexa.Tell("Goodbye.")
}

// finalResponse is the READY state: exactly one fetch, then the spoken
// summary with a display card, ending the session either way.
func (o *Orchestrator) finalResponse(ctx context.Context, city models.ResolvedCity, date models.ResolvedDate) alexa.ResponseEnvelope {
	predictions, err := o.tides.Predictions(ctx, city.StationID, date.QueryParam)
	if err != nil {
		log.Error().Err(err).Int("station_id", city.StationID).Msg("Error fetching tide data")
		return alexa.Tell(serviceProblemSpeech)
	}

	summary, err := tide.Extract(predictions)
	if err != nil {
		var malformed *tide.MalformedSeriesError
		if errors.As(err, &malformed) {
			log.Error().Err(err).Int("station_id", city.StationID).Msg("Malformed tide series")
		} else {
			log.Error().Err(err).Int("station_id", city.StationID).Msg("Error extracting tides")
		}
		return alexa.Tell(serviceProblemSpeech)
	}

	speech := fmt.Sprintf("%s in %s: %s", date.DisplayText, city.City, tide.Speech(summary))
	title := "Tides for " + city.City
	return alexa.TellWithCard(speech, title, speech)
}

func (o *Orchestrator) unknownCitySpeech(err error) string {
	var unknown *resolve.UnknownCityError
	if errors.As(err, &unknown) && unknown.Raw != "" {
		return fmt.Sprintf("I'm sorry, I currently do not know tide information for %s. %s %s",
			unknown.Raw, o.supportedCitiesSpeech(), whichCityPrompt)
	}
	return o.supportedCitiesSpeech() + " " + whichCityPrompt
}

func (o *Orchestrator) supportedCitiesSpeech() string {
	return fmt.Sprintf("Currently, I know tide information for these Cape Cod area towns: %s.",
		strings.Join(o.directory.CityNames(), ", "))
}
