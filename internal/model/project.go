package model

import "time"

// Project represents a project owned by a user.
type Project struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner is the owning user, populated on joined lookups.
	Owner *User
}

// ProjectRequest represents a project create request.
type ProjectRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents a partial project update. Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// ProjectResponse represents a project in API responses, including owner info.
type ProjectResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Owner       *UserResponse `json:"user,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ToResponse converts a Project to its API view.
func (p *Project) ToResponse() ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Owner != nil {
		owner := p.Owner.ToResponse()
		resp.Owner = &owner
	}
	return resp
}
