package entity

import "context"

type Profile struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	ClienteID string `json:"cliente_id"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type ProfileRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
}
