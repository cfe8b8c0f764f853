package clients

import (
	"context"
	"net/http"
	"net/url"

	helper "voc_backend/internals/helpers"
)

// UserClient talks to the User (directory) service. Lookups return
// (nil, nil) when the record does not exist so each caller can map absence
// onto its own error code.
type UserClient interface {
	ParseToken(ctx context.Context, token string) (int64, error)
	GetCustomerByID(ctx context.Context, userID int64) (*Customer, error)
	GetManagerByID(ctx context.Context, userID int64) (*Manager, error)
	GetManagersByIDs(ctx context.Context, userIDs []int64) (map[int64]*Manager, error)
	GetCustomersByIDs(ctx context.Context, userIDs []int64) (map[int64]*Customer, error)
	ManagerExists(ctx context.Context, userID int64) (bool, error)
	CustomerExists(ctx context.Context, userID int64) (bool, error)
}

type userClient struct {
	baseURL string
	hc      *http.Client
}

func NewUserClient(baseURL string) UserClient {
	return &userClient{baseURL: baseURL, hc: newHTTPClient()}
}

func (c *userClient) ParseToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	u := c.baseURL + "/api/users/token?token=" + url.QueryEscape(token)
	ok, err := getJSON(ctx, c.hc, u, &userID)
	if err != nil {
		return 0, err
	}
	if !ok || userID == 0 {
		return 0, helper.ErrInvalidToken
	}
	return userID, nil
}

func (c *userClient) GetCustomerByID(ctx context.Context, userID int64) (*Customer, error) {
	var customer Customer
	ok, err := getJSON(ctx, c.hc, joinURL(c.baseURL, "/api/customers/without-token/%d", userID), &customer)
	if err != nil || !ok {
		return nil, err
	}
	return &customer, nil
}

func (c *userClient) GetManagerByID(ctx context.Context, userID int64) (*Manager, error) {
	var manager Manager
	ok, err := getJSON(ctx, c.hc, joinURL(c.baseURL, "/api/managers/without-token/%d", userID), &manager)
	if err != nil || !ok {
		return nil, err
	}
	return &manager, nil
}

// GetManagersByIDs resolves a set of manager ids to a map in one pass per
// unique id. Ids that do not resolve are simply absent from the map.
func (c *userClient) GetManagersByIDs(ctx context.Context, userIDs []int64) (map[int64]*Manager, error) {
	out := make(map[int64]*Manager, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, seen := out[id]; seen {
			continue
		}
		m, err := c.GetManagerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m != nil {
			out[id] = m
		}
	}
	return out, nil
}

func (c *userClient) GetCustomersByIDs(ctx context.Context, userIDs []int64) (map[int64]*Customer, error) {
	out := make(map[int64]*Customer, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, seen := out[id]; seen {
			continue
		}
		cu, err := c.GetCustomerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cu != nil {
			out[id] = cu
		}
	}
	return out, nil
}

func (c *userClient) ManagerExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	ok, err := getJSON(ctx, c.hc, joinURL(c.baseURL, "/api/managers/exists?userId=%d", userID), &exists)
	if err != nil {
		return false, err
	}
	return ok && exists, nil
}

func (c *userClient) CustomerExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	ok, err := getJSON(ctx, c.hc, joinURL(c.baseURL, "/api/customers/exists?userId=%d", userID), &exists)
	if err != nil {
		return false, err
	}
	return ok && exists, nil
}
