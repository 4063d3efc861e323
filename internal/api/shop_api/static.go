package shop_api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type spaHandler struct {
	root  http.Dir
	files http.Handler
	index string
}

// newSPAHandler возвращает nil, если в dir нет index.html.
func newSPAHandler(dir string) http.Handler {
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	index := filepath.Join(dir, "index.html")
	if st, err := os.Stat(index); err != nil || st.IsDir() {
		return nil
	}
	return &spaHandler{root: http.Dir(dir), files: http.FileServer(http.Dir(dir)), index: index}
}

// ServeHTTP отдаёт существующие файлы, а для клиентских маршрутов
// index.html.
func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + r.URL.Path)
	if p != "/" {
		if f, err := h.root.Open(p); err == nil {
			st, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !st.IsDir() {
				h.files.ServeHTTP(w, r)
				return
			}
		}
	}
	http.ServeFile(w, r, h.index)
}
