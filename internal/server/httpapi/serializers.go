package httpapi

import (
	"time"

	"github.com/pzubov/products-api/internal/server/models"
)

// userPayload is the public view of a user. Token is set when the operation
// also issued a bearer token (login, registration).
type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

func newUserPayload(u *models.User, token string) userPayload {
	return userPayload{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		Token: token,
	}
}

type productPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductPayload(p *models.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductPayloads(items []*models.Product) []productPayload {
	out := make([]productPayload, 0, len(items))
	for _, p := range items {
		out = append(out, newProductPayload(p))
	}
	return out
}

type listMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}
