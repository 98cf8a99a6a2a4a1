package server

import (
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"blog/internal/auth"
	"blog/internal/content"
	"blog/internal/mail"
	"blog/internal/models"
)

const flashCookie = "flash"

type Server struct {
	content  *content.Repository
	creds    *auth.CredentialStore
	sessions *auth.SessionManager
	mailer   mail.Mailer

	tmpl    map[string]*template.Template
	handler http.Handler
}

func New(repo *content.Repository, creds *auth.CredentialStore, sessions *auth.SessionManager, mailer mail.Mailer, templateDir string) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	s := &Server{content: repo, creds: creds, sessions: sessions, mailer: mailer, tmpl: templates}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/about", s.handleAbout)
	r.Get("/contact", s.handleContactForm)
	r.Post("/contact", s.handleContact)
	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Get("/post/{id}", s.handlePost)
	r.Post("/post/{id}/comment", s.handleComment)
	r.Get("/new-post", s.handleNewPostForm)
	r.Post("/new-post", s.handleNewPost)
	r.Get("/edit-post/{id}", s.handleEditPostForm)
	r.Post("/edit-post/{id}", s.handleEditPost)
	r.Post("/delete-post/{id}", s.handleDeletePost)
	r.Get("/edit-admin", s.handleEditAdminForm)
	r.Post("/edit-admin", s.handleEditAdmin)
	r.Post("/delete-comment/{id}", s.handleDeleteComment)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// pageData assembles what every template needs: the principal, the logged-in
// flag, and any pending flash message. The rendering layer never sees
// credentials, only the user's display fields.
func (s *Server) pageData(w http.ResponseWriter, r *http.Request) map[string]any {
	user := s.sessions.CurrentUser(r)
	return map[string]any{
		"User":     user,
		"LoggedIn": user != nil,
		"IsAdmin":  user.IsAdmin(),
		"Flash":    s.popFlash(w, r),
	}
}

func (s *Server) flash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(msg), Path: "/", HttpOnly: true})
}

func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	msg, _ := url.QueryUnescape(cookie.Value)
	return msg
}

func (s *Server) startSession(w http.ResponseWriter, user *models.User) error {
	sid, expires, err := s.sessions.Login(user.ID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{Name: auth.SessionCookie, Value: sid, Path: "/", Expires: expires, HttpOnly: true})
	return nil
}

// admin resolves the principal and enforces the guard. A denied caller gets a
// generic 404: forbidden and missing are deliberately indistinguishable.
func (s *Server) admin(w http.ResponseWriter, r *http.Request) *models.User {
	user := s.sessions.CurrentUser(r)
	if err := auth.RequireAdmin(user); err != nil {
		http.NotFound(w, r)
		return nil
	}
	return user
}

// helpers
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
