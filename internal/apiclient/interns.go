package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"internportal/internal/model"
)

type InternAPI interface {
	ListInterns(ctx context.Context) ([]model.Person, error)
	CreateIntern(ctx context.Context, person model.Person) (*model.Person, error)
	UpdateIntern(ctx context.Context, id string, person model.Person) (*model.Person, error)
	DeleteIntern(ctx context.Context, id string) error
	Login(ctx context.Context, identifier, password string) (*model.User, error)
}

var _ InternAPI = (*Client)(nil)

// wirePerson tolerates numeric ids from the upstream store.
type wirePerson struct {
	ID         json.RawMessage `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	StartDate  string          `json:"startDate"`
	Status     string          `json:"status"`
	Role       string          `json:"role"`
}

func (p wirePerson) normalize() model.Person {
	return model.Person{
		ID:         rawToString(p.ID),
		Name:       p.Name,
		Email:      p.Email,
		Department: p.Department,
		StartDate:  p.StartDate,
		Status:     p.Status,
		Role:       p.Role,
	}
}

// ListInterns fetches the whole roster.
func (c *Client) ListInterns(ctx context.Context) ([]model.Person, error) {
	var wire []wirePerson
	if err := c.do(ctx, http.MethodGet, "/api/interns", nil, &wire); err != nil {
		return nil, err
	}
	people := make([]model.Person, len(wire))
	for i, p := range wire {
		people[i] = p.normalize()
	}
	return people, nil
}

// CreateIntern creates a person; the server assigns the id and role.
func (c *Client) CreateIntern(ctx context.Context, person model.Person) (*model.Person, error) {
	var wire wirePerson
	if err := c.do(ctx, http.MethodPost, "/api/interns", person, &wire); err != nil {
		return nil, err
	}
	created := wire.normalize()
	return &created, nil
}

// UpdateIntern replaces a person in place. A blank Password field is
// omitted from the request body, which the server reads as "keep the
// current password".
func (c *Client) UpdateIntern(ctx context.Context, id string, person model.Person) (*model.Person, error) {
	var wire wirePerson
	if err := c.do(ctx, http.MethodPut, "/api/interns/"+id, person, &wire); err != nil {
		return nil, err
	}
	updated := wire.normalize()
	return &updated, nil
}

// DeleteIntern removes a person from the roster. The upstream store does
// not cascade-delete their tasks.
func (c *Client) DeleteIntern(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/interns/"+id, nil, nil)
}

// Login performs the credential check. The user record comes back with
// either an internId or a bare id key depending on the endpoint version.
func (c *Client) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	var wire struct {
		InternID json.RawMessage `json:"internId"`
		ID       json.RawMessage `json:"id"`
		Name     string          `json:"name"`
		Email    string          `json:"email"`
		Role     string          `json:"role"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/interns/login", body, &wire); err != nil {
		return nil, err
	}

	internID := rawToString(wire.InternID)
	if internID == "" {
		internID = rawToString(wire.ID)
	}
	if internID == "" {
		return nil, fmt.Errorf("%w: login response missing intern id", ErrUnreachable)
	}

	return &model.User{
		InternID: internID,
		Name:     wire.Name,
		Email:    wire.Email,
		Role:     wire.Role,
	}, nil
}
