package alexa

const (
	speechTypePlainText = "PlainText"
	cardTypeSimple      = "Simple"
	envelopeVersion     = "1.0"
)

// ResponseEnvelope is the outbound skill response.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          Response       `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech,omitempty"`
}

func plainText(text string) *OutputSpeech {
	return &OutputSpeech{Type: speechTypePlainText, Text: text}
}

// Ask speaks a question and keeps the session open. The reprompt is spoken
// if the user stays silent.
func Ask(speech, reprompt string) ResponseEnvelope {
	return ResponseEnvelope{
		Version: envelopeVersion,
		Response: Response{
			OutputSpeech:     plainText(speech),
			Reprompt:         &Reprompt{OutputSpeech: plainText(reprompt)},
			ShouldEndSession: false,
		},
	}
}

// Tell speaks a final statement and ends the session.
func Tell(speech string) ResponseEnvelope {
	return ResponseEnvelope{
		Version: envelopeVersion,
		Response: Response{
			OutputSpeech:     plainText(speech),
			ShouldEndSession: true,
		},
	}
}

// TellWithCard is Tell plus a display card for final answers.
func TellWithCard(speech, title, content string) ResponseEnvelope {
	env := Tell(speech)
	env.Response.Card = &Card{Type: cardTypeSimple, Title: title, Content: content}
	return env
}

// End is the empty acknowledgement for a SessionEndedRequest; the platform
// ignores any speech attached to it.
func End() ResponseEnvelope {
	return ResponseEnvelope{
		Version:  envelopeVersion,
		Response: Response{ShouldEndSession: true},
	}
}

// WithState attaches the serialized conversation state to the response so
// the platform carries it into the next turn.
func (e ResponseEnvelope) WithState(attrs map[string]any) ResponseEnvelope {
	e.SessionAttributes = attrs
	return e
}
