package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nrattyp233/create-a-date1/internal/config"
	assistsvc "github.com/nrattyp233/create-a-date1/internal/services/assist"
	chatsvc "github.com/nrattyp233/create-a-date1/internal/services/chat"
	feedsvc "github.com/nrattyp233/create-a-date1/internal/services/feed"
	marketplacesvc "github.com/nrattyp233/create-a-date1/internal/services/marketplace"
	mediasvc "github.com/nrattyp233/create-a-date1/internal/services/media"
	swipesvc "github.com/nrattyp233/create-a-date1/internal/services/swipes"
	userssvc "github.com/nrattyp233/create-a-date1/internal/services/users"
	"github.com/nrattyp233/create-a-date1/internal/transport/http/handlers"
)

type Dependencies struct {
	SwipeService       *swipesvc.Service
	FeedService        *feedsvc.Service
	ChatService        *chatsvc.Service
	MarketplaceService *marketplacesvc.Service
	UsersService       *userssvc.Service
	MediaService       *mediasvc.Service
	AssistProvider     assistsvc.Provider
	Logger             *zap.Logger
	Config             config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.UsersService)
	feedHandler := handlers.NewFeedHandler(deps.FeedService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.ChatService)
	dateIdeaHandler := handlers.NewDateIdeaHandler(deps.MarketplaceService)
	profileHandler := handlers.NewProfileHandler(deps.UsersService, deps.MediaService)
	assistHandler := handlers.NewAssistHandler(deps.AssistProvider)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Get("/feed/{userId}", feedHandler.Handle)
		r.Post("/swipes", swipeHandler.Handle)
		r.Get("/matches/{userId}", matchesHandler.List)
		r.Post("/matches/{matchId}/read", matchesHandler.MarkRead)
		r.Post("/messages", matchesHandler.SendMessage)
		r.Get("/date-ideas", dateIdeaHandler.List)
		r.Post("/date-ideas", dateIdeaHandler.Create)
		r.Post("/date-ideas/{id}/apply", dateIdeaHandler.Apply)
		r.Put("/users/{id}", profileHandler.Update)
		r.Post("/users/{id}/photo", profileHandler.UploadPhoto)

		r.Route("/assist", func(r chi.Router) {
			r.Post("/compatibility", assistHandler.Compatibility)
			r.Post("/date-idea", assistHandler.DateIdeaDraft)
			r.Post("/chat-suggestions", assistHandler.ChatSuggestions)
			r.Post("/profile-feedback", assistHandler.ProfileFeedback)
			r.Post("/background", assistHandler.Background)
		})
	})
}
