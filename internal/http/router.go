package api

import (
	"database/sql"
	"fmt"
	stdhttp "net/http"

	intconfig "fleetlog/internal/config"
	h "fleetlog/internal/http/handlers"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/http/web"
	"fleetlog/internal/storage"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the multipart parts kept in memory; larger files
// spill to temp files.
const maxUploadMemory = 16 << 20

func NewRouter(db *sql.DB, store storage.FileStore, env intconfig.Env, log *zap.Logger) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	h.RegisterValidators()

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory
	r.SetHTMLTemplate(tmpl)

	metrics := middleware.NewMetrics()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			utils.LogError(middleware.GetRequestID(c), "http", "panic", fmt.Errorf("%v", rec))
			c.AbortWithStatus(stdhttp.StatusInternalServerError)
		}),
		middleware.CORS(env.CORSAllowedOrigins),
		metrics.Middleware(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := h.Handler{DB: db, Store: store, Env: env}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/api/health", hd.Health)

	session := r.Group("/", middleware.DBSession(db))
	session.GET("/login", hd.LoginPage)
	session.POST("/login", hd.Login)
	session.POST("/logout", hd.Logout)

	app := session.Group("/", middleware.RequireAuth(env.JWTSecret))
	{
		app.GET("/", hd.Dashboard)
		app.GET("/documents/:name", hd.Document)

		employees := app.Group("/employees")
		employees.GET("", hd.Employees)
		employees.POST("/add", hd.CreateEmployee)
		employees.GET("/:id/edit", hd.EditEmployeePage)
		employees.POST("/:id/edit", hd.UpdateEmployee)
		employees.POST("/:id/delete", hd.DeleteEmployee)
		employees.POST("/:id/documents", hd.UploadEmployeeDocuments)

		vehicles := app.Group("/vehicles")
		vehicles.GET("", hd.Vehicles)
		vehicles.POST("/add", hd.CreateVehicle)
		vehicles.GET("/:id/edit", hd.EditVehiclePage)
		vehicles.POST("/:id/edit", hd.UpdateVehicle)
		vehicles.POST("/:id/delete", hd.DeleteVehicle)
		vehicles.POST("/:id/documents", hd.UploadVehicleDocuments)

		routes := app.Group("/routes")
		routes.GET("", hd.Routes)
		routes.POST("/add", hd.CreateRoute)
		routes.GET("/:id/edit", hd.EditRoutePage)
		routes.POST("/:id/edit", hd.UpdateRoute)
		routes.POST("/:id/delete", hd.DeleteRoute)

		daily := app.Group("/daily")
		daily.GET("", hd.Daily)
		daily.POST("/add", hd.CreateTrip)
		daily.GET("/:id/edit", hd.EditTripPage)
		daily.POST("/:id/edit", hd.UpdateTrip)
		daily.POST("/:id/delete", hd.DeleteTrip)
		daily.POST("/delete-by-date", hd.DeleteTripsByDate)

		app.GET("/reports/trips", hd.TripReport)
		app.GET("/salary", hd.Salary)
		app.GET("/salary/pdf", hd.SalaryPDF)

		fuel := app.Group("/fuel")
		fuel.GET("", hd.Fuel)
		fuel.POST("/add", hd.CreateFuel)
		fuel.GET("/:id/edit", hd.EditFuelPage)
		fuel.POST("/:id/edit", hd.UpdateFuel)
		fuel.POST("/:id/delete", hd.DeleteFuel)
		fuel.GET("/import", hd.FuelImportPage)
		fuel.POST("/import", hd.ImportFuel)
		fuel.GET("/report", hd.FuelReport)

		finance := app.Group("/finance")
		finance.GET("", hd.Finance)
		finance.POST("/add", hd.CreateFinance)
		finance.GET("/:id/edit", hd.EditFinancePage)
		finance.POST("/:id/edit", hd.UpdateFinance)
		finance.POST("/:id/delete", hd.DeleteFinance)
		finance.GET("/report", hd.FinanceReport)

		app.GET("/export/:kind", hd.Export)

		api := app.Group("/api")
		api.GET("/endpoints", h.Endpoints)
		api.GET("/dashboard", hd.APIDashboard)
		api.GET("/routes/:id", hd.APIRoute)
		api.GET("/trips/plate", hd.APITripPlates)
		api.GET("/salary", hd.APISalary)
		api.GET("/trip-report", hd.APITripReport)
		api.POST("/fuel/import", hd.APIFuelImport)
	}

	h.SetRouter(r)
	return r, nil
}
