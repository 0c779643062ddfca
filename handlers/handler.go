package handlers

import (
	"gamehub/auth"
	"gamehub/cache"
	"gamehub/reviews"
	"gamehub/store"
)

// Handler carries every collaborator the HTTP layer depends on. All of them
// are injected; nothing here reads package globals.
type Handler struct {
	Store   store.Store
	Auth    auth.Provider
	Reviews *reviews.Service
	Cache   *cache.Cache
}

func New(st store.Store, provider auth.Provider, svc *reviews.Service, c *cache.Cache) *Handler {
	return &Handler{Store: st, Auth: provider, Reviews: svc, Cache: c}
}
