package domain

import "time"

// Vote records one voter's position on a proposal.
type Vote struct {
	VoterDocumentID string `json:"voter_document" bson:"voter_document"`
	InFavor         bool   `json:"in_favor" bson:"in_favor"`
}

// Comment is a citizen remark attached to a proposal.
type Comment struct {
	ID               string    `json:"id" bson:"id"`
	AuthorDocumentID string    `json:"author_document" bson:"author_document"`
	Description      string    `json:"description" bson:"description"`
	PublishDate      time.Time `json:"publish_date" bson:"publish_date"`
}

// Proposal is the aggregate root of the participation domain. It has no status
// field: its state is the accumulated votes and comments.
type Proposal struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	Title            string    `json:"title" bson:"title"`
	Description      string    `json:"description" bson:"description"`
	AuthorDocumentID string    `json:"author_document" bson:"author_document"`
	LimitDate        time.Time `json:"limit_date" bson:"limit_date"`
	Votes            []Vote    `json:"votes" bson:"votes"`
	Comments         []Comment `json:"comments" bson:"comments"`
}

// IsAuthor reports whether documentID created the proposal.
func (p *Proposal) IsAuthor(documentID string) bool {
	return p.AuthorDocumentID == documentID
}

// CastVote records v, dropping any earlier vote from the same voter so the
// proposal holds at most one vote per voter.
func (p *Proposal) CastVote(v Vote) {
	kept := make([]Vote, 0, len(p.Votes)+1)
	for _, existing := range p.Votes {
		if existing.VoterDocumentID != v.VoterDocumentID {
			kept = append(kept, existing)
		}
	}
	p.Votes = append(kept, v)
}

// AddComment appends c to the proposal's comments.
func (p *Proposal) AddComment(c Comment) {
	if p.Comments == nil {
		p.Comments = make([]Comment, 0, 1)
	}
	p.Comments = append(p.Comments, c)
}

// RemoveComment deletes the comment with the given id and reports whether
// anything was removed.
func (p *Proposal) RemoveComment(id string) bool {
	removed := false
	kept := make([]Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	p.Comments = kept
	return removed
}

// Tally counts votes in favor and against.
func (p *Proposal) Tally() (inFavor, against int) {
	for _, v := range p.Votes {
		if v.InFavor {
			inFavor++
		} else {
			against++
		}
	}
	return inFavor, against
}
