package routes

import (
	"net/http"

	"lnzh/auth"
	"lnzh/blog"
	"lnzh/booking"
	"lnzh/comments"
	"lnzh/devblog"
	"lnzh/middleware"
	"lnzh/orders"
	"lnzh/ratelim"
	"lnzh/thoughts"

	"github.com/julienschmidt/httprouter"
)

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/slots/:date", booking.GetSlots)
	router.POST("/api/orders", rl.Limit(booking.PlaceOrder))
	router.GET("/ws/slots/:date", booking.HandleWS)
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// The board is readable by anyone, like the public orders page;
	// pickup codes only come back with an admin token.
	router.GET("/api/orders", middleware.OptionalAuth(orders.ListOrders))
	router.PATCH("/api/orders/:orderid/status", middleware.Authenticate(orders.ToggleOrderStatus))
	router.DELETE("/api/orders/:orderid", middleware.Authenticate(orders.DeleteOrder))
	router.GET("/api/orders/:orderid/receipt", middleware.Authenticate(orders.PrintReceipt))
	router.POST("/api/orders/verify", middleware.Authenticate(orders.VerifyReceipt))
}

func AddCommentsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/comments", comments.GetComments)
	router.POST("/api/comments", rl.Limit(comments.CreateComment))
	router.POST("/api/comments/:commentid/react", rl.Limit(comments.ReactToComment))
}

func AddThoughtRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/thoughts", thoughts.ListThoughts)
	router.GET("/api/thoughts/likes", thoughts.GetLikes)
	router.POST("/api/thoughts/:index/like", rl.Limit(thoughts.ToggleLike))
}

func AddBlogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/blog/posts", blog.ListPosts)
}

func AddDevblogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/coffee/devblog", devblog.ListEntries)
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(auth.Login))
}

func AddUtilityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Write([]byte("OK"))
	})
}

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter) {
	AddBookingRoutes(router, rl)
	AddOrderRoutes(router, rl)
	AddCommentsRoutes(router, rl)
	AddThoughtRoutes(router, rl)
	AddBlogRoutes(router, rl)
	AddDevblogRoutes(router, rl)
	AddAuthRoutes(router, rl)
	AddUtilityRoutes(router, rl)
}
