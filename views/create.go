package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
)

// Create renders the compose form. Form.Content must already be sanitized.
func Create(page inkwell.CreatePage) templ.Component {
	f := page.Form
	return Layout(page.Chrome, "/create", render(func(w *writer) {
		w.raw(`<h1>Upload New Blog</h1>`)
		w.raw(`<form id="createPostForm" class="create-form" method="post" action="/create" enctype="multipart/form-data">`)
		w.raw(`<input type="hidden" name="_csrf" value="`)
		w.text(page.CSRF)
		w.raw(`"><input type="hidden" name="token" value="`)
		w.text(page.Token)
		w.raw(`">`)

		textField(w, "title", "Title", f.Title, true)
		textField(w, "excerpt", "Excerpt", f.Excerpt, true)
		textField(w, "category", "Category", f.Category, true)
		textField(w, "readTime", "Read time (leave empty to estimate)", f.ReadTime, false)

		w.raw(`<label>Accent<select name="accent">`)
		for _, a := range page.Accents {
			option(w, a, a, a == f.Accent)
		}
		w.raw(`</select></label>`)

		w.raw(`<label>Cover image URL<input type="url" name="imageUrl" value="`)
		w.text(f.ImageURL)
		w.raw(`"></label>`)
		w.raw(`<label>Or upload a cover image<input type="file" name="imageFile" accept="image/*"></label>`)

		w.raw(`<label for="contentEditor">Content</label>`)
		w.raw(`<div id="contentEditor" class="content-editor" contenteditable="true" role="textbox" aria-multiline="true">`)
		w.component(templ.Raw(f.Content))
		w.raw(`</div><input type="hidden" id="content" name="content" value="`)
		w.text(f.Content)
		w.raw(`">`)

		w.raw(`<p id="formStatus" class="form-status" role="status" aria-live="polite">`)
		w.text(page.Status)
		w.raw(`</p><button type="submit">Publish</button></form>`)
		w.raw(`<script src="/public/editor.js" defer></script>`)
	}))
}

func textField(w *writer, name, label, value string, required bool) {
	w.raw(`<label>`)
	w.text(label)
	w.raw(`<input type="text" name="`)
	w.text(name)
	w.raw(`" value="`)
	w.text(value)
	if required {
		w.raw(`" required>`)
	} else {
		w.raw(`">`)
	}
	w.raw(`</label>`)
}
