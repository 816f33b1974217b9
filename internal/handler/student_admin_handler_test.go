package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/models"
)

type fakeStudentAdminService struct {
	screen   *dto.StudentsScreen
	lastTab  string
	approved []string
	rejected map[string]string
}

func (f *fakeStudentAdminService) Screen(_ context.Context, tab string) (*dto.StudentsScreen, error) {
	f.lastTab = tab
	return f.screen, nil
}

func (f *fakeStudentAdminService) Approve(_ context.Context, studentID string) error {
	f.approved = append(f.approved, studentID)
	return nil
}

func (f *fakeStudentAdminService) ApproveWithClass(context.Context, string, dto.ApproveWithClassRequest) error {
	return nil
}

func (f *fakeStudentAdminService) Reject(_ context.Context, studentID string, req dto.RejectRequest) error {
	if f.rejected == nil {
		f.rejected = map[string]string{}
	}
	f.rejected[studentID] = req.Reason
	return nil
}

func (f *fakeStudentAdminService) Delete(context.Context, string) error {
	return nil
}

type fakeChildDocuments struct {
	documents []dto.DocumentView
}

func (f *fakeChildDocuments) StudentDocuments(context.Context, string) ([]dto.DocumentView, error) {
	return f.documents, nil
}

func TestStudentAdminHandlerScreenDefaultsToAllTab(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeStudentAdminService{screen: &dto.StudentsScreen{Tab: "all"}}
	h := NewStudentAdminHandler(svc, &fakeChildDocuments{}, NewCoordinator(&fakeSessionEnder{}, testCookieConfig(), nil))

	rec := httptest.NewRecorder()
	c := testContextWithSession(rec, models.RoleAdmin)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/students", nil)

	h.Screen(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", svc.lastTab)
}

func TestStudentAdminHandlerApproveReturnsRefreshedTab(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeStudentAdminService{screen: &dto.StudentsScreen{Tab: "pending"}}
	h := NewStudentAdminHandler(svc, &fakeChildDocuments{}, NewCoordinator(&fakeSessionEnder{}, testCookieConfig(), nil))

	rec := httptest.NewRecorder()
	c := testContextWithSession(rec, models.RoleAdmin)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/students/student-3/approve?tab=pending", nil)
	c.Params = gin.Params{{Key: "studentID", Value: "student-3"}}

	h.Approve(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"student-3"}, svc.approved)
	assert.Equal(t, "pending", svc.lastTab)
}

func TestStudentAdminHandlerRejectPassesReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeStudentAdminService{screen: &dto.StudentsScreen{}}
	h := NewStudentAdminHandler(svc, &fakeChildDocuments{}, NewCoordinator(&fakeSessionEnder{}, testCookieConfig(), nil))

	rec := httptest.NewRecorder()
	c := testContextWithSession(rec, models.RoleAdmin)
	c.Request = jsonRequest(http.MethodPut, "/admin/students/student-3/reject", `{"reason":"missing birth certificate"}`)
	c.Params = gin.Params{{Key: "studentID", Value: "student-3"}}

	h.Reject(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "missing birth certificate", svc.rejected["student-3"])
}
