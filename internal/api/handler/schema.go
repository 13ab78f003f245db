package handler

import "time"

// limitDateLayout is the dd/MM/yyyy form limit dates take on the wire.
const limitDateLayout = "02/01/2006"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// registerRequest is shared by the three registration routes. Field presence
// and format are checked by the user service so its messages stay uniform.
type registerRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	District string `json:"district,omitempty"`
}

type modifyUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type documentParam struct {
	Document string `param:"document" validate:"required,document"`
}

type userResponse struct {
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	District  string    `json:"district,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Proposals ---

type createProposalRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	LimitDate   string `json:"limit_date"  validate:"required,datetime=02/01/2006"`
}

type commentRequest struct {
	Description string `json:"description" validate:"required"`
}

type voteRequest struct {
	InFavor *bool `json:"in_favor" validate:"required"`
}

type deleteCommentRequest struct {
	CommentID string `json:"comment_id" validate:"required"`
}

type voteResponse struct {
	Voter   string `json:"voter_document"`
	InFavor bool   `json:"in_favor"`
}

type commentResponse struct {
	ID          string    `json:"id"`
	Author      string    `json:"author_document"`
	Description string    `json:"description"`
	PublishDate time.Time `json:"publish_date"`
}

type tallyResponse struct {
	InFavor int `json:"in_favor"`
	Against int `json:"against"`
}

type proposalResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Author      string            `json:"author_document"`
	LimitDate   string            `json:"limit_date"`
	Votes       []voteResponse    `json:"votes"`
	Comments    []commentResponse `json:"comments"`
	Tally       tallyResponse     `json:"tally"`
}
