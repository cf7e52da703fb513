// Package market exposes the data marketplace endpoints (accounts, the market
// itself and the user's own resources).
package market

import (
	"context"
	"net/http"
	"time"

	"github.com/shiptrain/portal/internal/apiclient"
)

// Caller is the part of the API client the marketplace modules use
type Caller interface {
	Call(ctx context.Context, r *apiclient.Request) (*apiclient.Envelope, error)
	Download(ctx context.Context, r *apiclient.Request) (*apiclient.Response, error)
	BinaryTimeout() time.Duration
	URL(path string) string
}

// API groups the marketplace endpoint modules
type API struct {
	Auth      *AuthAPI
	Market    *MarketAPI
	Resources *ResourcesAPI
}

func New(c Caller) *API {
	return &API{
		Auth:      &AuthAPI{c: c},
		Market:    &MarketAPI{c: c},
		Resources: &ResourcesAPI{c: c},
	}
}

const prefix = "/api/v1"

// ResourceFilter pages and filters the market listing; zero fields are omitted
type ResourceFilter struct {
	Type     string
	Category string
	Keyword  string
	Tag      string
	SortBy   string
	Page     int
	PageSize int
}

type MarketAPI struct {
	c Caller
}

func (m *MarketAPI) Resources(ctx context.Context, f ResourceFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().
		String("type", f.Type).
		String("category", f.Category).
		String("keyword", f.Keyword).
		String("tag", f.Tag).
		String("sortBy", f.SortBy).
		Int("page", f.Page).
		Int("pageSize", f.PageSize)
	return m.c.Call(ctx, &apiclient.Request{Path: prefix + "/market", Query: q.Values()})
}

func (m *MarketAPI) ResourceDetail(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return m.c.Call(ctx, &apiclient.Request{Path: prefix + "/market/" + id})
}

// Categories lists categories of a resource type; an empty type lists all
func (m *MarketAPI) Categories(ctx context.Context, resourceType string) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().String("type", resourceType)
	return m.c.Call(ctx, &apiclient.Request{Path: prefix + "/market/categories", Query: q.Values()})
}

func (m *MarketAPI) PopularTags(ctx context.Context, resourceType string, limit int) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().String("type", resourceType).Int("limit", limit)
	return m.c.Call(ctx, &apiclient.Request{Path: prefix + "/market/tags", Query: q.Values()})
}

func (m *MarketAPI) Favorite(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return m.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/market/" + id + "/favorite"})
}

func (m *MarketAPI) Unfavorite(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return m.c.Call(ctx, &apiclient.Request{Method: http.MethodDelete, Path: prefix + "/market/" + id + "/favorite"})
}

func (m *MarketAPI) Favorites(ctx context.Context) (*apiclient.Envelope, error) {
	return m.c.Call(ctx, &apiclient.Request{Path: prefix + "/market/favorites"})
}

// ResourceSample downloads a resource's sample file with the extended timeout
func (m *MarketAPI) ResourceSample(ctx context.Context, id string) (*apiclient.Response, error) {
	return m.c.Download(ctx, &apiclient.Request{
		Path:         prefix + "/market/sample/" + id,
		ResponseType: apiclient.ResponseBinary,
		Timeout:      m.c.BinaryTimeout(),
	})
}

func (m *MarketAPI) Purchase(ctx context.Context, id string) (*apiclient.Envelope, error) {
	return m.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/market/" + id + "/purchase"})
}

func (m *MarketAPI) Purchased(ctx context.Context) (*apiclient.Envelope, error) {
	return m.c.Call(ctx, &apiclient.Request{Path: prefix + "/market/purchased"})
}
