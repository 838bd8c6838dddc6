package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"github.com/Mathew005/event-platform-sub000/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.POST("/data/fetch", r.Service.Fetch)
	apiGroup.POST("/data/save", r.Service.Save)
	apiGroup.POST("/data/insert", r.Service.Insert)
	apiGroup.GET("/data/delete", r.Service.Delete)

	apiGroup.GET("/bookmark", r.Service.Bookmark)

	apiGroup.POST("/upload", r.Service.Upload)
	apiGroup.GET("/files/:kind/:id", r.Service.File)

	apiGroup.POST("/auth", r.Service.Auth)
	apiGroup.POST("/payment/checkout", r.Service.Checkout)

	apiGroup.GET("/views/event_overview", r.Service.EventOverview)
	apiGroup.GET("/views/event_program_view", r.Service.EventProgramView)
	apiGroup.GET("/views/organizer_dashboard", r.Service.OrganizerDashboard)
	apiGroup.GET("/views/participant_dashboard", r.Service.ParticipantDashboard)
	apiGroup.GET("/views/analysis", r.Service.Analysis)

	return app
}
