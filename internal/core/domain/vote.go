package domain

// Vote ties a voter to a choice of the same poll. EventID is the id of
// the reaction event that cast the vote; a redaction of that event
// withdraws it.
type Vote struct {
	Choice  *Choice
	VoterID string
	EventID string
}

// Record appends a vote for the choice carrying the given symbol. A
// symbol that matches none of the poll's choices records nothing; users
// react with unrelated emojis all the time.
func (p *Poll) Record(symbol, voterID, eventID string) bool {
	choice := p.ChoiceBySymbol(symbol)
	if choice == nil {
		return false
	}

	p.Votes = append(p.Votes, &Vote{
		Choice:  choice,
		VoterID: voterID,
		EventID: eventID,
	})
	return true
}

// Withdraw removes the first vote cast by the given reaction event, if
// any, and returns it.
func (p *Poll) Withdraw(eventID string) *Vote {
	for i, vote := range p.Votes {
		if vote.EventID == eventID {
			p.Votes = append(p.Votes[:i], p.Votes[i+1:]...)
			return vote
		}
	}
	return nil
}

func (p *Poll) VoteByEvent(eventID string) *Vote {
	for _, vote := range p.Votes {
		if vote.EventID == eventID {
			return vote
		}
	}
	return nil
}
