package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/book_service/internal/middleware/auth"
	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/service"
)

type Deps struct {
	AuthHandler   *AuthHTTP
	BookHandler   *BookHTTP
	ReviewHandler *ReviewHTTP
	TagHandler    *TagHTTP
	SearchHandler *SearchHTTP

	Guard     *authmw.TokenGuard
	BookSvc   *service.BookService
	ReviewSvc *service.ReviewService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	access := d.Guard.RequireAccess
	refresh := d.Guard.RequireRefresh

	e.POST("/signup", d.AuthHandler.Signup)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/refresh_token", d.AuthHandler.RefreshToken, refresh)
	e.GET("/logout", d.AuthHandler.Logout, access)
	e.GET("/current_user", d.AuthHandler.CurrentUser, access)

	ownsBook := authmw.RequireOwnerOrAdmin("id", d.BookSvc.UserOwnsBook)

	books := e.Group("/books", access)
	books.GET("/search", d.SearchHandler.SearchBooks)
	books.GET("", d.BookHandler.GetBooks)
	books.GET("/user/:user_uid", d.BookHandler.GetUserBooks)
	books.GET("/:id", d.BookHandler.GetBook)
	books.POST("", d.BookHandler.CreateBook)
	books.PATCH("/:id", d.BookHandler.PatchBook, ownsBook)
	books.DELETE("/:id", d.BookHandler.DeleteBook, ownsBook)

	ownsReview := authmw.RequireOwnerOrAdmin("id", d.ReviewSvc.UserOwnsReview)

	reviews := e.Group("/reviews", access)
	reviews.GET("", d.ReviewHandler.GetReviews)
	reviews.GET("/user/:user_uid", d.ReviewHandler.GetUserReviews)
	reviews.POST("/book/:book_uid", d.ReviewHandler.AddReview)
	reviews.PATCH("/:id", d.ReviewHandler.PatchReview, ownsReview)
	reviews.DELETE("/:id", d.ReviewHandler.DeleteReview, ownsReview)

	admin := authmw.RequireRoles(models.RoleAdmin)

	tags := e.Group("/tags", access)
	tags.GET("", d.TagHandler.GetTags)
	tags.POST("", d.TagHandler.CreateTag)
	tags.POST("/book/:book_uid", d.TagHandler.AddTagsToBook, authmw.RequireOwnerOrAdmin("book_uid", d.BookSvc.UserOwnsBook))
	tags.PATCH("/:id", d.TagHandler.PatchTag, admin)
	tags.DELETE("/:id", d.TagHandler.DeleteTag, admin)
}
