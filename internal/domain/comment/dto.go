package comment

// AddCommentRequest represents comment creation payload
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}
