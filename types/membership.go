package types

// Member links an authenticated user to a group. A member does not have to be a Person.
type Member struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

func (m Member) GetID() string { return m.ID }

type MemberInput struct {
	GroupID string `json:"group_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

type MemberUpdate struct {
	GroupID *string `json:"group_id,omitempty"`
	UserID  *string `json:"user_id,omitempty"`
}
