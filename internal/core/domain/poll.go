package domain

import (
	"fmt"
	"strings"
)

// Choice is one selectable option of a poll. Symbol is the reaction key
// voters use; it is unique within the poll. Count is derived and only
// valid right after Tally.
type Choice struct {
	Text   string
	Symbol string
	Count  int
}

type Poll struct {
	Question      string
	Choices       []*Choice
	Votes         []*Vote
	Author        string
	RoomIndex     int
	AnchorEventID string

	// UniqueVoters is derived by Tally.
	UniqueVoters int
}

// NewPoll builds a poll from the raw choice texts. Leading emojis become
// the choice symbols, the rest are filled from the keycap-digit pool.
// The room index and anchor are set once the poll is stored and announced.
func NewPoll(question string, rawChoices []string, author string) (*Poll, error) {
	choices, err := assignSymbols(rawChoices)
	if err != nil {
		return nil, err
	}

	return &Poll{
		Question: question,
		Choices:  choices,
		Author:   author,
	}, nil
}

func (p *Poll) ChoiceBySymbol(symbol string) *Choice {
	for _, choice := range p.Choices {
		if choice.Symbol == symbol {
			return choice
		}
	}
	return nil
}

// Tally recomputes every choice count from the current vote list and the
// number of distinct voters. Safe to call any number of times.
func (p *Poll) Tally() {
	for _, choice := range p.Choices {
		choice.Count = 0
	}

	voters := make(map[string]struct{}, len(p.Votes))
	for _, vote := range p.Votes {
		vote.Choice.Count++
		voters[vote.VoterID] = struct{}{}
	}
	p.UniqueVoters = len(voters)
}

// Render produces the announcement message for the poll.
func (p *Poll) Render() string {
	lines := make([]string, 0, len(p.Choices))
	for _, choice := range p.Choices {
		lines = append(lines, fmt.Sprintf("%s: %s", choice.Symbol, choice.Text))
	}

	return fmt.Sprintf("Poll created by %s (ID: %d)\n\n**%s**\n\n%s",
		p.Author, p.RoomIndex+1, p.Question, strings.Join(lines, "  \n"))
}

// RenderResults tallies the votes and produces the results message.
func (p *Poll) RenderResults() string {
	p.Tally()

	lines := make([]string, 0, len(p.Choices))
	for _, choice := range p.Choices {
		lines = append(lines, fmt.Sprintf("%s %d/%d : %s ", choice.Symbol, choice.Count, p.UniqueVoters, choice.Text))
	}

	return fmt.Sprintf("# Poll results\n**%s**\n\n(%d unique voters voted %d times)\n\n%s\n",
		p.Question, p.UniqueVoters, len(p.Votes), strings.Join(lines, "  \n"))
}
