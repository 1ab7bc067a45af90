package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hatakou1021-design/sns-site/internal/domain"
	"github.com/hatakou1021-design/sns-site/internal/feed"
)

type feedResponse struct {
	Posts []domain.Post `json:"posts"`
	// Prompt is set instead of results when a search was submitted without
	// a query; "nothing searched" is not "nothing found".
	Prompt string `json:"prompt,omitempty"`
}

// Feed renders the feed newest first, optionally narrowed to a category.
func Feed(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts := handler.posts.Load(r.Context())

		category := r.URL.Query().Get("category")
		if category == "" {
			category = feed.CategoryAll
		}

		renderJSON(w, http.StatusOK, feedResponse{Posts: feed.FilterByCategory(posts, category)})
	}
}

// Search looks for posts containing the literal query.
func Search(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts := handler.posts.Load(r.Context())

		results, err := feed.Search(posts, r.URL.Query().Get("q"))
		if errors.Is(err, feed.ErrEmptyQuery) {
			renderJSON(w, http.StatusOK, feedResponse{Prompt: "検索語を入力してください"})
			return
		}
		if err != nil {
			renderError(w, err)
			return
		}

		renderJSON(w, http.StatusOK, feedResponse{Posts: results})
	}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// CreatePost appends a post attributed to the logged-in user.
func CreatePost(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := GetSession(r.Context())

		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		author := session.Name
		if author == "" {
			author = session.Email
		}

		post, err := handler.posts.Append(r.Context(), req.Content, author)
		if err != nil {
			renderError(w, err)
			return
		}

		renderJSON(w, http.StatusCreated, post)
	}
}

// Bonus grants the daily login bonus to the logged-in user.
func Bonus(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := GetSession(r.Context())

		award, err := handler.points.AwardDailyBonus(r.Context(), session.Email)
		if err != nil {
			renderError(w, err)
			return
		}

		renderJSON(w, http.StatusOK, award)
	}
}

type siteResponse struct {
	SiteName string            `json:"siteName"`
	Theme    map[string]string `json:"theme"`
}

// Site exposes the site name and theme colours for the page chrome.
func Site(handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme := handler.Config.Theme
		renderJSON(w, http.StatusOK, siteResponse{
			SiteName: handler.Config.SiteName,
			Theme: map[string]string{
				"primaryColor":   theme.PrimaryColor,
				"secondaryColor": theme.SecondaryColor,
				"accentColor":    theme.AccentColor,
				"textColor":      theme.TextColor,
			},
		})
	}
}
