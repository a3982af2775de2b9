package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendwise-server/src/handlers"
	"spendwise-server/src/ledger"
	"spendwise-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, l *ledger.Ledger, limiter *middleware.RateLimiter) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.CORSMiddleware)
	r.Use(limiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", handlers.Register(pool))
		r.Post("/auth/login", handlers.Login(pool))
		r.Get("/auth/profile-images", handlers.GetProfileImages(pool))
		r.With(middleware.OptionalJWTAuthMiddleware(pool)).
			Get("/auth/profile/{username}", handlers.GetUserProfile(pool))

		// Public feed routes honor a token when one is supplied
		r.With(middleware.OptionalJWTAuthMiddleware(pool)).Group(func(r chi.Router) {
			r.Get("/posts", handlers.GetPosts(pool))
			r.Get("/posts/user/{username}", handlers.GetUserPosts(pool))
			r.Get("/posts/{postId}", handlers.GetPost(pool))
			r.Get("/posts/{postId}/comments", handlers.GetComments(pool))
		})

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(pool)).Group(func(r chi.Router) {
			// User
			r.Get("/auth/me", handlers.GetCurrentUser(pool))
			r.Put("/auth/profile", handlers.UpdateProfile(pool))
			r.Post("/auth/follow/{targetUserId}", handlers.FollowUser(pool))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(l))
			r.Get("/budgets/all-summaries", handlers.GetAllBudgetsSummary(l))
			r.Get("/budgets/reached", handlers.GetReachedBudgets(l))
			r.Get("/budgets/{budgetId}/transactions", handlers.GetBudgetTransactions(l))
			r.Delete("/budgets/{budgetId}", handlers.DeleteBudget(l))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(l))
			r.Get("/transactions", handlers.GetTransactions(l))
			r.Get("/transactions/summary", handlers.GetTransactionsSummary(l))
			r.Delete("/transactions/{transactionId}", handlers.DeleteTransaction(l))

			// Subscriptions
			r.Get("/subscriptions", handlers.GetSubscriptions(pool))
			r.Post("/subscriptions", handlers.CreateSubscription(pool))
			r.Get("/subscriptions/summary", handlers.GetSubscriptionsSummary(pool))
			r.Delete("/subscriptions/{id}", handlers.DeleteSubscription(pool))

			// Groceries
			r.Get("/groceries", handlers.GetGroceries(pool))
			r.Post("/groceries", handlers.AddGrocery(pool))
			r.Get("/groceries/summary", handlers.GetGroceriesSummary(pool))
			r.Patch("/groceries/{id}/toggle", handlers.ToggleGrocery(pool))
			r.Put("/groceries/{id}", handlers.UpdateGrocery(pool))
			r.Delete("/groceries/{id}", handlers.DeleteGrocery(pool))
			r.Delete("/groceries", handlers.ClearGroceries(pool))

			// Posts
			r.Post("/posts", handlers.CreatePost(pool))
			r.Post("/posts/{postId}/like", handlers.LikePost(pool))
			r.Delete("/posts/{postId}", handlers.DeletePost(pool))
			r.Post("/posts/{postId}/comments", handlers.CreateComment(pool))

			// Comments
			r.Post("/comments/{commentId}/like", handlers.LikeComment(pool))
			r.Delete("/comments/{commentId}", handlers.DeleteComment(pool))

			// Notifications
			r.Get("/notifications", handlers.GetNotifications(pool))
			r.Delete("/notifications/{notificationId}", handlers.DeleteNotification(pool))
		})
	})

	return r
}
