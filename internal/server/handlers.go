package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blog/internal/auth"
	"blog/internal/content"
	"blog/internal/mail"
	"blog/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.content.ListPosts()
	if err != nil {
		http.Error(w, "error", 500)
		return
	}
	page := content.Paginate(posts, atoi(r.URL.Query().Get("page")))
	data := s.pageData(w, r)
	data["Page"] = page
	s.render(w, "index", data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about", s.pageData(w, r))
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", s.pageData(w, r))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")
	user, err := s.creds.Register(email, password, name)
	switch {
	case errors.Is(err, models.ErrValidation):
		s.flash(w, "all fields are required")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, models.ErrDuplicateEmail):
		s.flash(w, "you've already signed up with that email, log in instead")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case err != nil:
		http.Error(w, "could not register", 500)
	default:
		if err := s.startSession(w, user); err != nil {
			http.Error(w, "could not create session", 500)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", s.pageData(w, r))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	user, err := s.creds.Verify(email, password)
	if errors.Is(err, models.ErrUnknownEmail) || errors.Is(err, models.ErrBadPassword) {
		// same message for both so the form does not reveal which part was wrong
		s.flash(w, "invalid email or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "could not log in", 500)
		return
	}
	if err := s.startSession(w, user); err != nil {
		http.Error(w, "could not create session", 500)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err == nil {
		s.sessions.Logout(cookie.Value)
		http.SetCookie(w, &http.Cookie{Name: auth.SessionCookie, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	id := atoi(chi.URLParam(r, "id"))
	post, err := s.content.GetPost(id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "error", 500)
		return
	}
	comments, err := s.content.ListComments(id)
	if err != nil {
		http.Error(w, "error", 500)
		return
	}
	data := s.pageData(w, r)
	data["Post"] = post
	data["Comments"] = comments
	s.render(w, "post", data)
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	id := atoi(chi.URLParam(r, "id"))
	user := s.sessions.CurrentUser(r)
	_, err := s.content.AddComment(id, user, r.FormValue("body"))
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		s.flash(w, "you need to log in before leaving a comment")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, models.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, models.ErrValidation):
		s.flash(w, "comment cannot be empty")
		http.Redirect(w, r, "/post/"+itoa(id), http.StatusSeeOther)
	case err != nil:
		http.Error(w, "could not save comment", 500)
	default:
		http.Redirect(w, r, "/post/"+itoa(id), http.StatusSeeOther)
	}
}

func (s *Server) handleNewPostForm(w http.ResponseWriter, r *http.Request) {
	if s.admin(w, r) == nil {
		return
	}
	data := s.pageData(w, r)
	data["Editing"] = false
	s.render(w, "make_post", data)
}

func (s *Server) handleNewPost(w http.ResponseWriter, r *http.Request) {
	user := s.admin(w, r)
	if user == nil {
		return
	}
	post, err := s.content.CreatePost(user, r.FormValue("title"), r.FormValue("subtitle"), r.FormValue("body"), r.FormValue("img_url"))
	switch {
	case errors.Is(err, models.ErrValidation):
		s.flash(w, "all fields are required")
		http.Redirect(w, r, "/new-post", http.StatusSeeOther)
	case errors.Is(err, models.ErrDuplicateTitle):
		s.flash(w, "a post with that title already exists")
		http.Redirect(w, r, "/new-post", http.StatusSeeOther)
	case err != nil:
		http.Error(w, "could not create post", 500)
	default:
		http.Redirect(w, r, "/post/"+itoa(post.ID), http.StatusSeeOther)
	}
}

func (s *Server) handleEditPostForm(w http.ResponseWriter, r *http.Request) {
	if s.admin(w, r) == nil {
		return
	}
	id := atoi(chi.URLParam(r, "id"))
	post, err := s.content.GetPost(id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "error", 500)
		return
	}
	data := s.pageData(w, r)
	data["Editing"] = true
	data["Post"] = post
	s.render(w, "make_post", data)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	if s.admin(w, r) == nil {
		return
	}
	id := atoi(chi.URLParam(r, "id"))
	_, err := s.content.UpdatePost(id, r.FormValue("title"), r.FormValue("subtitle"), r.FormValue("body"), r.FormValue("img_url"))
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, models.ErrValidation):
		s.flash(w, "all fields are required")
		http.Redirect(w, r, "/edit-post/"+itoa(id), http.StatusSeeOther)
	case errors.Is(err, models.ErrDuplicateTitle):
		s.flash(w, "a post with that title already exists")
		http.Redirect(w, r, "/edit-post/"+itoa(id), http.StatusSeeOther)
	case err != nil:
		http.Error(w, "could not update post", 500)
	default:
		http.Redirect(w, r, "/post/"+itoa(id), http.StatusSeeOther)
	}
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if s.admin(w, r) == nil {
		return
	}
	id := atoi(chi.URLParam(r, "id"))
	err := s.content.DeletePost(id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "could not delete post", 500)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEditAdminForm(w http.ResponseWriter, r *http.Request) {
	if s.admin(w, r) == nil {
		return
	}
	s.render(w, "edit_admin", s.pageData(w, r))
}

func (s *Server) handleEditAdmin(w http.ResponseWriter, r *http.Request) {
	user := s.admin(w, r)
	if user == nil {
		return
	}
	err := s.creds.UpdateCredentials(user.ID, r.FormValue("email"), r.FormValue("password"))
	switch {
	case errors.Is(err, models.ErrValidation):
		s.flash(w, "email and password are required")
		http.Redirect(w, r, "/edit-admin", http.StatusSeeOther)
	case errors.Is(err, models.ErrDuplicateEmail):
		s.flash(w, "that email is already taken")
		http.Redirect(w, r, "/edit-admin", http.StatusSeeOther)
	case err != nil:
		http.Error(w, "could not update credentials", 500)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// handleDeleteComment allows the comment's author or the admin to remove it.
// Everyone else gets the same 404 an unknown comment would produce.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id := atoi(chi.URLParam(r, "id"))
	user := s.sessions.CurrentUser(r)
	comment, err := s.content.GetComment(id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "error", 500)
		return
	}
	if user == nil || (user.ID != comment.AuthorID && !user.IsAdmin()) {
		http.NotFound(w, r)
		return
	}
	if err := s.content.DeleteComment(id); err != nil {
		http.Error(w, "could not delete comment", 500)
		return
	}
	http.Redirect(w, r, "/post/"+itoa(comment.PostID), http.StatusSeeOther)
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "contact", s.pageData(w, r))
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	msg := mail.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		s.flash(w, "name, email and message are required")
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}
	if err := s.mailer.Send(msg.Email, "New Message from Blog", msg.Body()); err != nil {
		log.Printf("contact mail: %v", err)
		s.flash(w, "could not send your message, try again later")
	} else {
		s.flash(w, "message sent")
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
