package handler

import (
	"io/fs"
	"net/http"
	"path"
)

// Static serves files under dir. Directories are served only through their
// index.html; anything else that does not resolve to a file is a 404.
func Static(dir string) http.Handler {
	return http.FileServer(indexOnlyFS{root: http.Dir(dir)})
}

type indexOnlyFS struct {
	root http.FileSystem
}

func (f indexOnlyFS) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		index, err := f.root.Open(path.Join(name, "index.html"))
		if err != nil {
			file.Close()
			return nil, fs.ErrNotExist
		}
		index.Close()
	}

	return file, nil
}
