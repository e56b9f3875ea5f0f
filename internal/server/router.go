package server

import (
	"net/http"

	"vendor-tracker/internal/config"
	"vendor-tracker/internal/handlers"
	"vendor-tracker/internal/metrics"
	"vendor-tracker/internal/middleware"
	"vendor-tracker/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: int(cfg.JWTRefreshTTL.Seconds()), HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("vct_session", store))

	tokens := middleware.NewTokens(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authH := &handlers.AuthHandler{Tokens: tokens}

	// HEALTH / METRICS
	r.GET("/health", handlers.Health)
	r.GET("/live", handlers.Live)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// AUTH
	r.POST("/api/token/", authH.ObtainToken)
	r.POST("/api/token/refresh/", authH.RefreshToken)
	r.POST("/api/logout/", authH.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth(tokens), middleware.InjectUser())
	admin := middleware.RequireRole(models.RoleAdmin)

	auth.GET("/api/me/", authH.Me)
	auth.POST("/api/register/", admin, authH.Register)
	auth.GET("/states/", handlers.GetStates)

	// VENDORS
	v := auth.Group("/vendor")
	v.POST("/AddVendor/", handlers.AddVendor)
	v.GET("/GetVendor/", handlers.GetVendors)
	v.GET("/GetVendorByID/:id/", handlers.GetVendorByID)
	v.PUT("/UpdateVendor/:id/", handlers.UpdateVendor)
	v.PATCH("/UpdateVendor/:id/", handlers.UpdateVendor)
	v.DELETE("/DeleteVendor/:id/", admin, handlers.DeleteVendor)
	v.GET("/VendorStats/", handlers.VendorStats)

	v.POST("/AddVendorContact/:vendor_id/", handlers.AddVendorContact)
	v.GET("/GetVendorContacts/:vendor_id/", handlers.GetVendorContacts)
	v.PUT("/UpdateVendorContact/", handlers.UpdateVendorContact)
	v.PATCH("/UpdateVendorContact/", handlers.UpdateVendorContact)
	v.DELETE("/DeleteVendorContact/", admin, handlers.DeleteVendorContact)

	v.POST("/AddVendorAddress/", handlers.AddVendorAddress)
	v.POST("/GetVendorAddresses/", handlers.GetVendorAddresses)
	v.PUT("/UpdateVendorAddress/", handlers.UpdateVendorAddress)
	v.PATCH("/UpdateVendorAddress/", handlers.UpdateVendorAddress)
	v.DELETE("/DeleteVendorAddress/", admin, handlers.DeleteVendorAddress)

	// CLIENTS
	cl := auth.Group("/client")
	cl.GET("/domains/", handlers.GetDomains)
	cl.POST("/AddClient/", handlers.AddClient)
	cl.GET("/GetClient/", handlers.GetClients)
	cl.GET("/GetVendor/", handlers.GetVendors)
	cl.GET("/GetClientByID/:id/", handlers.GetClientByID)
	cl.PUT("/UpdateClient/:id/", handlers.UpdateClient)
	cl.PATCH("/UpdateClient/:id/", handlers.UpdateClient)
	cl.DELETE("/DeleteClient/:id/", admin, handlers.DeleteClient)
	cl.POST("/SearchClient/", handlers.SearchClient)
	cl.GET("/ClientStats/", handlers.ClientStats)

	cl.POST("/AddClientAddress/", handlers.AddClientAddress)
	cl.POST("/GetClientAddresses/", handlers.GetClientAddresses)
	cl.PUT("/UpdateClientAddress/", handlers.UpdateClientAddress)
	cl.DELETE("/DeleteClientAddress/", admin, handlers.DeleteClientAddress)

	cl.POST("/AttachVendor/:client_id/", handlers.AttachVendor)
	cl.GET("/GetVendorsForClient/:client_id/", handlers.GetVendorsForClient)
	cl.DELETE("/DetachVendorFromClient/:client_id/:vendor_id/", admin, handlers.DetachVendorFromClient)

	// CONSULTANTS / SUBMISSIONS
	s := auth.Group("/sale")
	s.POST("/AddSkill/", handlers.AddSkill)
	s.GET("/GetSkill/", handlers.GetSkills)
	s.POST("/AddVisa/", handlers.AddVisa)
	s.GET("/GetVisa/", handlers.GetVisas)

	s.POST("/AddConsultant/", handlers.AddConsultant)
	s.GET("/GetAllConsultants/", handlers.GetAllConsultants)
	s.POST("/GetConsultantByID/", handlers.GetConsultantByID)
	s.PUT("/UpdateConsultant/", handlers.UpdateConsultant)
	s.POST("/UpdateConsultantStatus/", handlers.UpdateConsultantStatus)
	s.DELETE("/DeleteConsultant/:id/", admin, handlers.DeleteConsultant)

	s.POST("/AddSubmission/", handlers.AddSubmission)
	s.PUT("/UpdateSubmission/", handlers.UpdateSubmission)
	s.POST("/UpdateVendorResponse/", handlers.UpdateVendorResponse)
	s.POST("/GetSubmissionReport/", handlers.GetSubmissionReport)
	s.GET("/GetAllSubmissions/", handlers.GetAllSubmissions)
	s.POST("/GetSubmissionByID/", handlers.GetSubmissionByID)
	s.POST("/GetSubmissionByVendor/", handlers.GetSubmissionByVendor)
	s.POST("/GetSubmissionByClient/", handlers.GetSubmissionByClient)
	s.POST("/GetSubmissionByMarketer/", handlers.GetSubmissionByMarketer)
	s.POST("/GetSubmissionByConsultant/", handlers.GetSubmissionByConsultant)

	// ADMIN PANEL
	ap := auth.Group("/adminpanel")
	ap.POST("/AddMarketer/", handlers.AddMarketer)
	ap.POST("/GetMarketer/", handlers.GetMarketer)
	ap.POST("/AddRecruiter/", handlers.AddRecruiter)
	ap.POST("/GetRecruiter/", handlers.GetRecruiter)
	ap.GET("/AuditLog/", admin, handlers.ListAuditLogs)

	auth.GET("/admin/GetMarketer/", handlers.ListMarketers)

	return r
}
