package api

import "github.com/gin-gonic/gin"

func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(), gin.Recovery())

	router.GET("/healthz", h.Health)

	v1 := router.Group("/api/v1")
	{
		courses := v1.Group("/courses/:sigle")
		courses.GET("/requisites", h.CourseRequisites)
		courses.GET("/unlocks", h.Unlocks)

		v1.POST("/requisites/parse", h.Parse)
	}

	return router
}
