package handler

import (
	"strings"
	"time"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest, role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		DocumentID: strings.TrimSpace(req.Document),
		Name:       req.Name,
		Email:      strings.TrimSpace(req.Email),
		Password:   req.Password,
		Address:    req.Address,
		Role:       role,
		District:   req.District,
	}
}

func toModifyInput(req modifyUserRequest) ports.ModifyInput {
	in := ports.ModifyInput{Name: req.Name, Password: req.Password}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		in.Email = &email
	}
	return in
}

// toCreateProposalInput expects req to have passed validation, which
// guarantees LimitDate parses.
func toCreateProposalInput(req createProposalRequest) ports.CreateProposalInput {
	limit, _ := time.Parse(limitDateLayout, req.LimitDate)
	return ports.CreateProposalInput{
		Title:       req.Title,
		Description: req.Description,
		LimitDate:   limit,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		Document:  u.DocumentID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role.String(),
		District:  u.District,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toProposalResponse(p *domain.Proposal) proposalResponse {
	votes := make([]voteResponse, 0, len(p.Votes))
	for _, v := range p.Votes {
		votes = append(votes, voteResponse{Voter: v.VoterDocumentID, InFavor: v.InFavor})
	}

	comments := make([]commentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentResponse{
			ID:          c.ID,
			Author:      c.AuthorDocumentID,
			Description: c.Description,
			PublishDate: c.PublishDate,
		})
	}

	inFavor, against := p.Tally()
	return proposalResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Author:      p.AuthorDocumentID,
		LimitDate:   p.LimitDate.Format(limitDateLayout),
		Votes:       votes,
		Comments:    comments,
		Tally:       tallyResponse{InFavor: inFavor, Against: against},
	}
}

func toProposalResponses(proposals []*domain.Proposal) []proposalResponse {
	out := make([]proposalResponse, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, toProposalResponse(p))
	}
	return out
}
