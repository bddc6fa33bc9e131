// api/router.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(st Store, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())

	r.GET("/health", HealthHandler(st))

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/companies", CompanyCreateHandler(st))
		apiGroup.GET("/companies", CompanyListHandler(st))
		apiGroup.GET("/companies/:handle", CompanyGetHandler(st))
		apiGroup.PATCH("/companies/:handle", CompanyUpdateHandler(st))
		apiGroup.DELETE("/companies/:handle", CompanyDeleteHandler(st))

		apiGroup.POST("/users", UserRegisterHandler(st))
		apiGroup.GET("/users", UserListHandler(st))
		apiGroup.GET("/users/:username", UserGetHandler(st))
		apiGroup.PATCH("/users/:username", UserUpdateHandler(st))
		apiGroup.DELETE("/users/:username", UserDeleteHandler(st))
		apiGroup.POST("/users/:username/jobs/:id", UserApplyHandler(st))

		apiGroup.POST("/jobs", JobCreateHandler(st))
		apiGroup.GET("/jobs", JobListHandler(st))
		apiGroup.GET("/jobs/:id", JobGetHandler(st))
		apiGroup.PATCH("/jobs/:id", JobUpdateHandler(st))
		apiGroup.DELETE("/jobs/:id", JobDeleteHandler(st))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}

func RunServer(addr string, st Store, log *zap.Logger) error {
	return NewRouter(st, log).Run(addr)
}

func HealthHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
