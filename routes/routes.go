package routes

import (
	"net/http"

	"foodgram/auth"
	"foodgram/catalog"
	"foodgram/favorites"
	"foodgram/middleware"
	"foodgram/profile"
	"foodgram/ratelim"
	"foodgram/recipes"
	"foodgram/shopping"
	"foodgram/suggestions"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", rl.Limit(auth.Register))
	router.POST("/api/v1/auth/login", rl.Limit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/v1/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tags", ratelim.RateLimit(catalog.GetTags))
	router.GET("/api/v1/tags/tag/:id", ratelim.RateLimit(catalog.GetTag))
	router.GET("/api/v1/ingredients", ratelim.RateLimit(catalog.GetIngredients))
	router.GET("/api/v1/ingredients/ingredient/:id", ratelim.RateLimit(catalog.GetIngredient))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.GET("/api/v1/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.POST("/api/v1/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.PATCH("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))

	router.POST("/api/v1/recipes/recipe/:id/favorite", middleware.Authenticate(favorites.AddFavorite))
	router.DELETE("/api/v1/recipes/recipe/:id/favorite", middleware.Authenticate(favorites.RemoveFavorite))
	router.POST("/api/v1/recipes/recipe/:id/shopping_cart", middleware.Authenticate(favorites.AddToCart))
	router.DELETE("/api/v1/recipes/recipe/:id/shopping_cart", middleware.Authenticate(favorites.RemoveFromCart))

	router.GET("/api/v1/recipes/shopping-list/download", middleware.Authenticate(shopping.DownloadShoppingList))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/v1/profile/me", middleware.Authenticate(profile.GetProfile))
	router.GET("/api/v1/users", middleware.OptionalAuth(profile.GetUsers))
	router.GET("/api/v1/users/user/:id", middleware.OptionalAuth(profile.GetUserProfile))

	router.POST("/api/v1/follows/:id", ratelim.RateLimit(middleware.Authenticate(profile.ToggleFollow)))
	router.DELETE("/api/v1/follows/:id", ratelim.RateLimit(middleware.Authenticate(profile.ToggleUnFollow)))
	router.GET("/api/v1/follows/:id/status", ratelim.RateLimit(middleware.Authenticate(profile.DoesFollow)))
	router.GET("/api/v1/subscriptions", middleware.Authenticate(profile.GetSubscriptions))
}

func AddSuggestionsRoutes(router *httprouter.Router) {
	router.GET("/api/v1/suggestions/follow", ratelim.RateLimit(middleware.Authenticate(suggestions.SuggestFollowers)))
}
