package types

// Person participates in exactly one group and may be linked to an authenticated user.
type Person struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	GroupID string  `json:"group_id"`
	UserID  *string `json:"user_id"`
}

func (p Person) GetID() string { return p.ID }

type PersonInput struct {
	Name    string  `json:"name" binding:"required"`
	GroupID string  `json:"group_id" binding:"required"`
	UserID  *string `json:"user_id,omitempty"`
}

type PersonUpdate struct {
	Name    *string `json:"name,omitempty"`
	GroupID *string `json:"group_id,omitempty"`
	UserID  *string `json:"user_id,omitempty"`
}
