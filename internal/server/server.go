package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/api"
	"github.com/verible/verible-cli/pkg/history"
	"github.com/verible/verible-cli/pkg/trustview"
)

//go:embed web
var WebFS embed.FS

type Server struct {
	DB       *history.DB
	Client   *api.Client
	Username string
	Password string

	// refreshSlot enforces last-write-wins for concurrent refreshes of the
	// "current seller" panel.
	refreshSlot trustview.ResultSlot
}

func New(db *history.DB, client *api.Client, user, pass string) *Server {
	return &Server{
		DB:       db,
		Client:   client,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	// API Group
	mux.HandleFunc("GET /api/sellers", s.basicAuth(s.handleSellers))
	mux.HandleFunc("GET /api/seller/history", s.basicAuth(s.handleSellerHistory))
	mux.HandleFunc("GET /api/changes", s.basicAuth(s.handleChanges))
	mux.HandleFunc("GET /api/stats", s.basicAuth(s.handleStats))
	mux.HandleFunc("GET /api/current", s.basicAuth(s.handleCurrent))
	mux.HandleFunc("POST /api/refresh", s.basicAuth(s.handleRefresh))

	// Static Files
	webRoot, err := fs.Sub(WebFS, "web")
	if err != nil {
		return err
	}
	fileServer := http.FileServer(http.FS(webRoot))
	mux.Handle("/", s.basicAuthMiddlewareForStatic(fileServer))

	utils.Log.Infof("Starting dashboard on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) basicAuthMiddlewareForStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
