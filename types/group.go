package types

import "time"

// Group is the root of a sharing context.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (g Group) GetID() string { return g.ID }

type GroupInput struct {
	Name string `json:"name" binding:"required"`
}

type GroupUpdate struct {
	Name *string `json:"name,omitempty"`
}
