package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-odds/internal/config"
)

// NewRouter wires every API route. Running or deleting a simulation and
// managing admins need a token; reading past runs does not.
func NewRouter(cfg *config.AppConfig) *gin.Engine {
	r := gin.Default()
	r.Use(config.CORSMiddleware(cfg))

	api := r.Group("/api/v1")
	{
		api.POST("/admin/login", Login)

		users := api.Group("/admin/users", RequireAuth())
		{
			users.POST("", CreateUser)                 // create
			users.GET("", ListUsers)                   // list
			users.PUT("/:id/password", UpdatePassword) // reset password
			users.DELETE("/:id", DeleteUser)           // delete
		}

		sims := api.Group("/simulations")
		{
			sims.GET("", ListSimulations)                         // newest first
			sims.GET("/:id", GetSimulation)                       // one run
			sims.POST("", RequireAuth(), RunSimulation)           // JSON entrants
			sims.POST("/upload", RequireAuth(), UploadSimulation) // CSV entrants
			sims.DELETE("/:id", RequireAuth(), DeleteSimulation)  // run and its groups
		}
	}
	return r
}
