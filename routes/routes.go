package routes

import (
	"net/http"

	"blogapi/controllers"
	"blogapi/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authController *controllers.AuthController, postController *controllers.PostController, commentController *controllers.CommentController) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/me", middleware.AuthRequired(), authController.Me)
		}

		posts := api.Group("/posts")
		posts.Use(middleware.AuthRequired())
		{
			posts.GET("/all-posts", postController.GetPosts)
			posts.POST("/add-post", postController.CreatePost)
			posts.GET("/post/search", postController.SearchPosts)
			posts.GET("/post/:id", postController.GetPost)
			posts.PUT("/post/:id", postController.UpdatePost)
			posts.DELETE("/post/:id", postController.DeletePost)
			posts.PATCH("/post/:id/restore", postController.RestorePost)
		}

		// The first segment is a post id on the nested routes and a comment
		// id on the flat ones; gin requires one wildcard name per position.
		comments := api.Group("/comments")
		comments.Use(middleware.AuthRequired())
		{
			comments.GET("/:id/comments", commentController.GetComments)
			comments.POST("/:id/comments", commentController.CreateComment)
			comments.PUT("/:id", commentController.UpdateComment)
			comments.DELETE("/:id", commentController.DeleteComment)
		}
	}
}
