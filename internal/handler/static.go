package handler

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// indexFile はルートパスで返すランディングページのファイル名。
const indexFile = "index.html"

// StaticHandler はランディングページと公開ディレクトリの静的ファイルを配信する。
type StaticHandler struct {
	views  fs.FS
	public fs.FS
}

// NewStaticHandler はStaticHandlerを生成する。
// viewsにはindex.htmlを含むディレクトリ、publicには公開アセットのディレクトリを渡す。
// nilの場合、そのディレクトリからは何も配信しない。
func NewStaticHandler(views, public fs.FS) *StaticHandler {
	return &StaticHandler{
		views:  views,
		public: public,
	}
}

// Index はランディングページを返す。
// GET /
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	if !fileExists(h.views, indexFile) {
		notFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.views, indexFile)
}

// Public は公開ディレクトリ内のファイルを返す。存在しない場合は404。
// GET /*
func (h *StaticHandler) Public(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || !fileExists(h.public, name) {
		notFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.public, name)
}

// fileExists はfsys内に通常ファイルとしてnameが存在するかを返す。
func fileExists(fsys fs.FS, name string) bool {
	if fsys == nil || !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
