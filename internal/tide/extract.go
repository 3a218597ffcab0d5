package tide

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// Extraction phases. The walk needs one rising run before the first high,
// one falling run before the low, and one rising run before the second
// high; a falling sample after the second high finishes it.
const (
	phaseFirstRise = iota
	phaseFall
	phaseSecondRise
	phaseDone
)

// Extract walks a chronological water-level series and picks out the day's
// first high tide, the low after it, and the second high.
//
// Each candidate is held to the last sample before the direction reverses,
// so the recorded high is the peak just before the first fall rather than
// the first rising sample. Equal consecutive heights count as falling.
// A series that ends before the second high is confirmed by a fall is
// malformed; there is no best-effort partial result.
func Extract(predictions []models.TidePrediction) (models.TideSummary, error) {
	var summary models.TideSummary

	if len(predictions) < 2 {
		return summary, NewMalformedSeriesError(
			fmt.Sprintf("series too short: %d samples", len(predictions)))
	}

	phase := phaseFirstRise
	firstHighSeen := false

	for i := 1; i < len(predictions); i++ {
		sample := predictions[i]
		rising := sample.Height > predictions[i-1].Height

		switch phase {
		case phaseFirstRise:
			if rising {
				summary.FirstHigh = models.TideReading{Time: sample.Time, Height: sample.Height}
				firstHighSeen = true
			} else if firstHighSeen {
				phase = phaseFall
				summary.Low = models.TideReading{Time: sample.Time, Height: sample.Height}
			}
		case phaseFall:
			if rising {
				phase = phaseSecondRise
				summary.SecondHigh = models.TideReading{Time: sample.Time, Height: sample.Height}
			} else {
				summary.Low = models.TideReading{Time: sample.Time, Height: sample.Height}
			}
		case phaseSecondRise:
			if rising {
				summary.SecondHigh = models.TideReading{Time: sample.Time, Height: sample.Height}
			} else {
				phase = phaseDone
			}
		}

		if phase == phaseDone {
			// Later samples are ignored.
			break
		}
	}

	if phase != phaseDone {
		return models.TideSummary{}, NewMalformedSeriesError(
			"series lacks the direction reversals for two highs and a low")
	}

	return summary, nil
}

// SpeakTime renders a reading's time for speech, e.g. "6:42 AM".
func SpeakTime(reading models.TideReading) string {
	return reading.Time.Format("3:04 PM")
}

// SpeakHeight rounds a height to the nearest half foot and spells it out:
// below .25 rounds down, .25 through .75 rounds to the half, above .75
// rounds up. Sign is preserved for readings below the datum.
func SpeakHeight(height float64) string {
	magnitude := math.Abs(height)
	whole := int(math.Floor(magnitude))
	fraction := magnitude - math.Floor(magnitude)

	var phrase string
	switch {
	case fraction < 0.25:
		phrase = numberWord(whole) + " feet"
	case fraction <= 0.75:
		phrase = numberWord(whole) + " and a half feet"
	default:
		phrase = numberWord(whole+1) + " feet"
	}

	if height < 0 {
		return "negative " + phrase
	}
	return phrase
}

// Speech builds the spoken tide summary sentence.
func Speech(summary models.TideSummary) string {
	return fmt.Sprintf(
		"The first high tide will be around %s and will peak at about %s, "+
			"followed by a low tide at around %s that will be about %s. "+
			"The second high tide will be around %s and will peak at about %s.",
		SpeakTime(summary.FirstHigh), SpeakHeight(summary.FirstHigh.Height),
		SpeakTime(summary.Low), SpeakHeight(summary.Low.Height),
		SpeakTime(summary.SecondHigh), SpeakHeight(summary.SecondHigh.Height))
}

var smallNumbers = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen", "twenty",
}

func numberWord(n int) string {
	if n >= 0 && n < len(smallNumbers) {
		return smallNumbers[n]
	}
	return strconv.Itoa(n)
}
