package httpserver

import (
	"net/http"

	"cryptocube/internal/accounts"
	"cryptocube/internal/auth"
	"cryptocube/internal/execution"
	"cryptocube/internal/httputil"
	"cryptocube/internal/marketdata"
	"cryptocube/internal/orders"
	"cryptocube/internal/portfolio"

	"github.com/go-chi/chi/v5"
)

type RouterDeps struct {
	AuthHandler      *auth.Handler
	AccountsHandler  *accounts.Handler
	OrderHandler     *orders.Handler
	ExecutionHandler *execution.Handler
	PortfolioHandler *portfolio.Handler
	MarketHandler    *marketdata.Handler
	AuthService      *auth.Service
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS middleware for development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Use(SecurityHeaders)
	r.Use(RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.AuthHandler.Register)
			r.Post("/login", d.AuthHandler.Login)
		})
		r.Get("/market/prices", d.MarketHandler.Prices)
		r.Get("/market/ws", d.MarketHandler.WS.ServeHTTP)
		r.Group(func(r chi.Router) {
			r.Use(WithAuth(d.AuthService))
			r.Get("/account", authed(d.AccountsHandler.Get))
			r.Post("/orders", authed(d.OrderHandler.Place))
			r.Get("/orders", authed(d.OrderHandler.List))
			r.Delete("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
				userID, ok := UserID(r)
				if !ok {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "unauthorized"})
					return
				}
				d.OrderHandler.Cancel(w, r, userID, chi.URLParam(r, "id"))
			})
			r.Post("/orders/{id}/execute", func(w http.ResponseWriter, r *http.Request) {
				userID, ok := UserID(r)
				if !ok {
					httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "unauthorized"})
					return
				}
				d.ExecutionHandler.Execute(w, r, userID, chi.URLParam(r, "id"))
			})
			r.Get("/trades", authed(d.OrderHandler.TradeHistory))
			r.Get("/portfolio", authed(d.PortfolioHandler.Positions))
			r.Get("/portfolio/valuation", authed(d.PortfolioHandler.Valuation))
			r.Get("/portfolio/history", authed(d.PortfolioHandler.History))
		})
	})
	return r
}

func authed(h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{Error: "unauthorized"})
			return
		}
		h(w, r, userID)
	}
}
