package inkwell

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// chrome builds the layout state for the current request.
func (a *App) chrome(c echo.Context, meta PageMeta) Chrome {
	return Chrome{
		SiteName: a.Config.Name,
		Meta:     meta,
		Theme:    a.activeTheme(c),
		Flash:    popFlash(c),
		CSRF:     CsrfToken(c),
	}
}

func (a *App) activeTheme(c echo.Context) Theme {
	saved, err := a.themes.Saved(c.Request().Context())
	if err != nil {
		a.Log.Warn().Err(err).Msg("read theme")
	}
	return ResolveTheme(saved, prefersDark(c.Request()))
}

func (a *App) handleHome(c echo.Context) error {
	f := Filter{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	}
	if f.Category == "" {
		f.Category = "all"
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
	page := HomePage{
		Chrome: a.chrome(c, PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL),
		}),
		Posts:      a.Posts.Query(f),
		Categories: a.Posts.Categories(),
		Filter:     f,
	}
	return Render(c, a.Views.Home(page))
}

func (a *App) handlePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil {
		return a.renderNotFound(c)
	}
	post, err := a.Posts.Get(id)
	if errors.Is(err, ErrNotFound) {
		return a.renderNotFound(c)
	}
	if err != nil {
		return err
	}
	page := PostPage{
		Chrome: a.chrome(c, PageMeta{
			Title:       post.Title + " | " + a.Config.Name,
			Description: post.Excerpt,
			URL:         PostURL(a.Config.URL, post.ID),
		}),
		Post: post,
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Posts.Query(Filter{Sort: SortNewest}))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Posts.Query(Filter{Sort: SortNewest}))
}

func (a *App) handleTheme(c echo.Context) error {
	ctx := c.Request().Context()
	next := ParseTheme(c.FormValue("theme"))
	if next == "" {
		next = a.activeTheme(c).Toggle()
	}
	if err := a.themes.Save(ctx, next); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, safeReturnPath(c.FormValue("return")))
}

// safeReturnPath only allows local absolute paths.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

func (a *App) renderNotFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.chrome(c, PageMeta{
		Title: "Post not found | " + a.Config.Name,
	})))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.chrome(c, PageMeta{Title: a.Config.Name})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
