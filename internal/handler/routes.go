package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/middleware"
	"github.com/oakfield-primary/portal-api/internal/models"
)

// Set bundles every portal handler for route registration.
type Set struct {
	Auth           *AuthHandler
	Parent         *ParentHandler
	Children       *ChildrenHandler
	Documents      *DocumentHandler
	Trips          *TripHandler
	Meetings       *MeetingHandler
	AdminDashboard *AdminDashboardHandler
	Students       *StudentAdminHandler
	AdminTrips     *TripAdminHandler
	AdminMeetings  *MeetingAdminHandler
	Announcements  *AnnouncementHandler
	AdminDocuments *DocumentAdminHandler
}

// Register binds every route. The session middleware is expected to run
// globally before these; the role guards below decide who gets in.
func (s *Set) Register(r *gin.Engine) {
	r.GET("/", s.Auth.RedirectLogin)
	r.NoRoute(s.Auth.RedirectLogin)

	r.POST("/login", s.Auth.Login)
	r.POST("/register", s.Auth.Register)
	r.POST("/logout", s.Auth.Logout)
	r.POST("/forgot-password", s.Auth.ForgotPassword)
	r.GET("/reset-password", s.Auth.VerifyReset)
	r.POST("/reset-password", s.Auth.ResetPassword)

	parent := r.Group("/parent", middleware.RequireRole(models.RoleParent))
	{
		parent.GET("", s.Parent.Dashboard)

		parent.GET("/children", s.Children.List)
		parent.POST("/children", s.Children.AddChild)
		parent.PUT("/children/:studentID", s.Children.UpdateChild)
		parent.GET("/children/:studentID/documents", s.Children.Documents)

		parent.GET("/documents", s.Documents.Screen)
		parent.POST("/documents", s.Documents.Upload)
		parent.DELETE("/documents/:documentID", s.Documents.Delete)
		parent.POST("/documents/replace", s.Documents.Replace)
		parent.POST("/documents/request", s.Documents.Request)

		parent.GET("/trips", s.Trips.Screen)
		parent.POST("/trips/:tripID/register", s.Trips.Register)

		parent.GET("/meetings", s.Meetings.Screen)
		parent.POST("/meetings/request", s.Meetings.Request)
	}

	admin := r.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", s.AdminDashboard.Dashboard)

		admin.GET("/students", s.Students.Screen)
		admin.PUT("/students/:studentID/approve", s.Students.Approve)
		admin.PUT("/students/:studentID/approve-with-class", s.Students.ApproveWithClass)
		admin.PUT("/students/:studentID/reject", s.Students.Reject)
		admin.DELETE("/students/:studentID", s.Students.Delete)
		admin.GET("/students/:studentID/documents", s.Students.Documents)

		admin.GET("/trips", s.AdminTrips.List)
		admin.POST("/trips", s.AdminTrips.Create)
		admin.PUT("/trips/:tripID", s.AdminTrips.Update)
		admin.DELETE("/trips/:tripID", s.AdminTrips.Delete)
		admin.PUT("/trips/:tripID/hold", s.AdminTrips.Hold)
		admin.PUT("/trips/:tripID/activate", s.AdminTrips.Activate)
		admin.PUT("/trips/:tripID/image", s.AdminTrips.UpdateImage)
		admin.GET("/trips/:tripID/paid-students", s.AdminTrips.PaidStudents)

		admin.GET("/meetings", s.AdminMeetings.List)
		admin.POST("/meetings", s.AdminMeetings.Create)
		admin.PUT("/meetings/:meetingID", s.AdminMeetings.Update)
		admin.DELETE("/meetings/:meetingID", s.AdminMeetings.Delete)
		admin.PUT("/meetings/:meetingID/approve", s.AdminMeetings.Approve)
		admin.PUT("/meetings/:meetingID/reject", s.AdminMeetings.Reject)

		admin.GET("/announcements", s.Announcements.List)
		admin.POST("/announcements", s.Announcements.Create)
		admin.PUT("/announcements/:announcementID", s.Announcements.Update)
		admin.DELETE("/announcements/:announcementID", s.Announcements.Delete)

		admin.GET("/documents", s.AdminDocuments.Queue)
		admin.PUT("/documents/:documentID/verify", s.AdminDocuments.Verify)
		admin.PUT("/document-requests/:requestID/approve", s.AdminDocuments.ApproveRequest)
	}
}
