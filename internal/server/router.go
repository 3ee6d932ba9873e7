package server

import (
	"context"
	"net/http"

	"mutfago/internal/handlers"
	applog "mutfago/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)

	mux.Handle("/app", handlers.RequireAuthentication(http.HandlerFunc(handlers.App)))
	mux.Handle("/app/", handlers.RequireAuthentication(http.HandlerFunc(handlers.App)))
	mux.Handle("/app/tools/recipe-import", handlers.RequireAuthentication(http.HandlerFunc(handlers.ToolsImportRecipe)))

	mux.Handle("/api/auth/login", http.HandlerFunc(handlers.APILogin))
	mux.Handle("/api/auth/signup", http.HandlerFunc(handlers.APISignup))
	mux.Handle("/api/kitchen", handlers.RequireAPIUser(http.HandlerFunc(handlers.KitchenResource)))
	mux.Handle("/api/kitchen/", handlers.RequireAPIUser(http.HandlerFunc(handlers.KitchenResource)))
	mux.Handle("/api/pantry", handlers.RequireAPIUser(http.HandlerFunc(handlers.PantryResource)))
	mux.Handle("/api/pantry/", handlers.RequireAPIUser(http.HandlerFunc(handlers.PantryResource)))
	mux.Handle("/api/market", handlers.RequireAPIUser(http.HandlerFunc(handlers.MarketResource)))
	mux.Handle("/api/market/", handlers.RequireAPIUser(http.HandlerFunc(handlers.MarketResource)))
	mux.Handle("/api/modules", handlers.RequireAPIUser(http.HandlerFunc(handlers.ModulesResource)))
	mux.Handle("/api/modules/", handlers.RequireAPIUser(http.HandlerFunc(handlers.ModulesResource)))
	mux.Handle("/api/recipes", handlers.RequireAPIUser(http.HandlerFunc(handlers.RecipesResource)))
	mux.Handle("/api/recipes/", handlers.RequireAPIUser(http.HandlerFunc(handlers.RecipesResource)))
	mux.Handle("/api/catalog/", handlers.RequireAPIUser(http.HandlerFunc(handlers.CatalogResource)))
	mux.Handle("/api/notifications", handlers.RequireAPIUser(http.HandlerFunc(handlers.NotificationsResource)))
	mux.Handle("/api/notifications/", handlers.RequireAPIUser(http.HandlerFunc(handlers.NotificationsResource)))
	mux.Handle("/api/admin/", handlers.RequireAdmin(http.HandlerFunc(handlers.AdminResource)))

	mux.HandleFunc("/", handlers.Home)
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))

	applog.Debug(context.Background(), "http routes registered")
	return mux
}
