package web

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Mount(r chi.Router) {
	authenticated := AuthenticatedMiddleware()
	r.Use(SessionMiddleware(h))

	r.Route("/", func(r chi.Router) {
		r.Post(LoginRoute, Login(h))
		r.Post(SignUpRoute, SignUp(h))
		r.Post("/logout", Logout(h))
		r.Get("/session", CurrentSession(h))
		r.Get("/site", Site(h))
	})

	r.Get(FeedRoute, Feed(h))
	r.Get("/search", Search(h))

	r.Group(func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/posts", CreatePost(h))
		r.Put("/profile", UpdateProfile(h))
		r.Post("/bonus", Bonus(h))
	})
}
