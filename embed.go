package inkwell

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains files shipped with the binary:
// seeds.yaml, editor.js, style.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// publicFS serves the browser assets without exposing seeds.yaml.
func publicFS() fs.FS {
	return assetFS{EmbeddedAssets}
}

type assetFS struct {
	fsys embed.FS
}

func (a assetFS) Open(name string) (fs.File, error) {
	switch name {
	case "editor.js", "style.css":
		return a.fsys.Open("embedded/" + name)
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
