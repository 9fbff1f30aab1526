package pressroom

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pressroom/content"
)

const (
	readerSession = "reader"
	recentKey     = "recent"
	maxRecent     = 5
)

func (a *App) newSessionStore() *sessions.CookieStore {
	secret := a.Config.SessionSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// recentlyViewed returns the ids the reader opened before this request, most
// recent first, and moves id to the front of the stored list. Session
// failures only cost the reader the list.
func (a *App) recentlyViewed(c echo.Context, id string) []string {
	sess, err := session.Get(readerSession, c)
	if err != nil {
		a.Logger.Debug("reader session", "error", err)
		return nil
	}
	raw, _ := sess.Values[recentKey].(string)
	var prev []string
	if raw != "" {
		prev = strings.Split(raw, "\n")
	}

	next := []string{id}
	var before []string
	for _, p := range prev {
		if p == id || p == "" {
			continue
		}
		before = append(before, p)
		if len(next) < maxRecent {
			next = append(next, p)
		}
	}

	sess.Values[recentKey] = strings.Join(next, "\n")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		a.Logger.Warn("save reader session", "error", err)
	}
	return before
}

// itemsByID picks ids out of items, keeping the order of ids and skipping
// any that no longer exist.
func itemsByID(items []content.Item, ids []string) []content.Item {
	if len(ids) == 0 {
		return nil
	}
	index := make(map[string]int, len(items))
	for i, it := range items {
		if _, ok := index[it.ID]; !ok {
			index[it.ID] = i
		}
	}
	var out []content.Item
	for _, id := range ids {
		if i, ok := index[id]; ok {
			out = append(out, items[i])
		}
	}
	return out
}
