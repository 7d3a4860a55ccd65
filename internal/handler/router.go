package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/taskhub/backend/internal/service"
)

// NewRouter assembles the route table. Only login and register are public;
// every other /api/v1 route sits behind AuthMiddleware, so an unlisted route
// fails closed.
func NewRouter(
	log zerolog.Logger,
	corsOrigins []string,
	authSvc *service.AuthService,
	auth *AuthHandler,
	tasks *TaskHandler,
	projects *ProjectHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	if len(corsOrigins) > 0 {
		r.Use(CORSMiddleware(corsOrigins))
	}

	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/openapi.json", OpenAPIDoc)

	api := r.Group("/api/v1")

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	protected := api.Group("")
	protected.Use(AuthMiddleware(authSvc))
	{
		protected.GET("/auth/me", auth.Me)
		protected.PUT("/auth/password", auth.ChangePassword)
		protected.DELETE("/account", auth.DeleteAccount)

		protected.POST("/projects", projects.Create)
		protected.GET("/projects", projects.List)
		protected.GET("/projects/:id", projects.Get)
		protected.PUT("/projects/:id", projects.Update)
		protected.DELETE("/projects/:id", projects.Delete)

		protected.POST("/tasks", tasks.Create)
		protected.GET("/tasks", tasks.List)
		protected.GET("/tasks/:id", tasks.Get)
		protected.PUT("/tasks/:id", tasks.Update)
		protected.DELETE("/tasks/:id", tasks.Delete)
	}

	return r
}
