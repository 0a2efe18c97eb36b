package inkwell

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/editor"
	"github.com/eringen/inkwell/sanitize"
)

// Status messages shown in the compose form's status region.
const (
	StatusEmptyContent   = "Please add post content before publishing."
	StatusFileRead       = "Could not read uploaded image file"
	StatusPublished      = "Published successfully."
	StatusPublishFailed  = "Could not publish this blog. Please try again."
	StatusFormExpired    = "This form has expired. Please publish again."
	StatusAlreadyRunning = "This post is already being published."
)

func (a *App) createMeta() PageMeta {
	return PageMeta{
		Title: "Upload New Blog | " + a.Config.Name,
		URL:   BuildURL(a.Config.URL, "create"),
	}
}

func (a *App) handleCreate(c echo.Context) error {
	return a.renderCreate(c, http.StatusOK, PostForm{}, a.ledger.Issue(), "")
}

func (a *App) renderCreate(c echo.Context, code int, form PostForm, token, status string) error {
	if form.Content != "" {
		// Only sanitized markup goes back into the editable region.
		if content, err := sanitize.SanitizeHTML(form.Content); err == nil {
			form.Content = content
		} else {
			form.Content = ""
		}
	}
	if form.Accent == "" {
		form.Accent = DefaultAccent
	}
	page := CreatePage{
		Chrome:  a.chrome(c, a.createMeta()),
		Form:    form,
		Token:   token,
		Status:  status,
		Accents: Accents,
	}
	return RenderStatus(c, code, a.Views.Create(page))
}

func (a *App) handleCreateSubmit(c echo.Context) error {
	form := PostForm{
		Title:    c.FormValue("title"),
		Excerpt:  c.FormValue("excerpt"),
		Category: c.FormValue("category"),
		ReadTime: c.FormValue("readTime"),
		Accent:   c.FormValue("accent"),
		ImageURL: c.FormValue("imageUrl"),
		Content:  c.FormValue("content"),
		Token:    c.FormValue("token"),
	}

	switch result, id := a.ledger.Claim(form.Token); result {
	case ClaimDone:
		return c.Redirect(http.StatusSeeOther, PostPath(id))
	case ClaimInFlight:
		return a.renderCreate(c, http.StatusConflict, form, form.Token, StatusAlreadyRunning)
	case ClaimUnknown:
		return a.renderCreate(c, http.StatusConflict, form, a.ledger.Issue(), StatusFormExpired)
	}

	imageFile, err := a.readUpload(c, "imageFile")
	if err != nil {
		a.ledger.Release(form.Token)
		a.Log.Warn().Err(err).Msg("read cover image")
		return a.renderCreate(c, http.StatusBadRequest, form, form.Token, StatusFileRead)
	}
	form.ImageFile = imageFile

	post, err := a.publisher.Publish(c.Request().Context(), form)
	if err != nil {
		a.ledger.Release(form.Token)
		var verr *ValidationError
		switch {
		case errors.Is(err, ErrEmptyContent):
			return a.renderCreate(c, http.StatusUnprocessableEntity, form, form.Token, StatusEmptyContent)
		case errors.As(err, &verr):
			return a.renderCreate(c, http.StatusUnprocessableEntity, form, form.Token, verr.Message)
		default:
			a.Log.Error().Err(err).Msg("publish post")
			return a.renderCreate(c, http.StatusInternalServerError, form, form.Token, StatusPublishFailed)
		}
	}
	a.ledger.Complete(form.Token, post.ID)

	if err := setFlash(c, StatusPublished); err != nil {
		a.Log.Warn().Err(err).Msg("save flash")
	}
	return c.Redirect(http.StatusSeeOther, PostPath(post.ID))
}

// readUpload returns the named file field as a data URL, or "" when no file was
// chosen.
func (a *App) readUpload(c echo.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	return a.openUpload(fh)
}

func (a *App) openUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()
	return ImageDataURL(f, a.Config.MaxUploadSize)
}

// editorImageResponse is the body of POST /editor/image.
type editorImageResponse struct {
	Content string           `json:"content"`
	Caret   *editor.Boundary `json:"caret,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (a *App) handleEditorImage(c echo.Context) error {
	src, err := a.readUpload(c, "image")
	if err != nil || src == "" {
		if err != nil {
			a.Log.Warn().Err(err).Msg("read pasted image")
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: StatusFileRead})
	}

	surface, err := editor.Load(c.FormValue("content"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	var state *editor.SelectionState
	if raw := strings.TrimSpace(c.FormValue("selection")); raw != "" && raw != "null" {
		state = new(editor.SelectionState)
		if err := json.Unmarshal([]byte(raw), state); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid selection"})
		}
	}
	sel, err := surface.Selection(state)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	if err := editor.InsertImage(surface, sel, src); err != nil {
		if errors.Is(err, editor.ErrUnsafeImage) || errors.Is(err, editor.ErrInvalidPath) ||
			errors.Is(err, editor.ErrInvalidOffset) {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		}
		return err
	}

	content, err := surface.HTML()
	if err != nil {
		return err
	}
	resp := editorImageResponse{Content: content}
	if sel != nil {
		if resp.Caret, err = surface.Caret(sel); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, resp)
}
