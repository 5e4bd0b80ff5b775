package rounds

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
)

// The round page boots a client-side scorecard application and passes it
// the full round as a JSON argument inside a script tag. That blob is the
// extraction source; there is no documented API behind it.
const scorecardMarker = "Golfshot.Applications.Scorecard"

// scorecardPayload mirrors the bootstrap argument. Only the fields this
// pipeline reads are declared; everything else in the blob is ignored.
type scorecardPayload struct {
	Model *payloadModel `json:"model" validate:"required"`
}

type payloadModel struct {
	Detail payloadDetail `json:"detail"`
	Par    payloadValues `json:"par"`
	Game   payloadGame   `json:"game"`
}

type payloadDetail struct {
	CourseName         string `json:"courseName" validate:"required"`
	FormattedStartTime string `json:"formattedStartTime" validate:"required"`
}

type payloadValues struct {
	Values []int `json:"values"`
}

type payloadGame struct {
	Teams []payloadTeam `json:"teams"`
}

type payloadTeam struct {
	Players []payloadPlayer `json:"players"`
}

type payloadPlayer struct {
	Scores []payloadScore `json:"scores"`
}

type payloadScore struct {
	Score int `json:"score"`
}

var validate = validator.New()

// parsePayload decodes and validates a scorecard blob. Shape problems come
// back as *ShapeError.
func parsePayload(blob []byte) (*scorecardPayload, error) {
	var p scorecardPayload
	if err := json.Unmarshal(blob, &p); err != nil {
		return nil, &ShapeError{Reason: "payload is not valid JSON", Err: err}
	}
	if err := validate.Struct(&p); err != nil {
		return nil, &ShapeError{Reason: "payload missing mandatory fields", Err: err}
	}
	if len(p.holes()) == 0 {
		return nil, &ShapeError{Reason: "payload carries no hole scores"}
	}
	return &p, nil
}

// holes pairs the par track with the first player's scores, hole by hole.
// The scraped profile's own scores are always the first player of the
// first team.
func (p *scorecardPayload) holes() []Hole {
	pars := p.Model.Par.Values
	scores := p.Model.playerScores()

	n := len(pars)
	if len(scores) < n {
		n = len(scores)
	}

	holes := make([]Hole, 0, n)
	for i := 0; i < n; i++ {
		holes = append(holes, Hole{
			Number: i + 1,
			Score:  scores[i],
			Par:    pars[i],
		})
	}
	return holes
}

func (m *payloadModel) playerScores() []int {
	if len(m.Game.Teams) == 0 || len(m.Game.Teams[0].Players) == 0 {
		return nil
	}
	raw := m.Game.Teams[0].Players[0].Scores
	scores := make([]int, len(raw))
	for i, s := range raw {
		scores[i] = s.Score
	}
	return scores
}

// scorecardJSON pulls the scorecard blob out of the rendered page. The
// blob is a call argument, not a bare script body, so it is located by
// balanced-brace scanning from the first brace after the marker.
func scorecardJSON(html string) ([]byte, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	var blob []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, scorecardMarker)
		if idx < 0 {
			return true
		}
		open := strings.IndexByte(text[idx:], '{')
		if open < 0 {
			return true
		}
		if obj, ok := balancedObject(text[idx+open:]); ok {
			blob = []byte(obj)
			return false
		}
		return true
	})

	return blob, blob != nil
}

// balancedObject returns the JSON object starting at s[0] == '{'. It
// tracks string and escape state so braces inside string values do not
// miscount.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], true
				}
			}
		}
	}
	return "", false
}
