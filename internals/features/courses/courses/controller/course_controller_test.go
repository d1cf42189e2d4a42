package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hairnerds_backend/internals/constants"
	"hairnerds_backend/internals/features/courses/courses/dto"
	"hairnerds_backend/internals/features/courses/courses/model"
)

// Skema dibuat manual: tag default:gen_random_uuid() milik PostgreSQL
// tidak bisa dimigrasi otomatis ke SQLite.
const courseDDL = `CREATE TABLE courses (
	course_id TEXT PRIMARY KEY,
	course_instructor_id TEXT NOT NULL,
	course_category_id TEXT,
	course_title TEXT NOT NULL,
	course_slug TEXT NOT NULL,
	course_description TEXT,
	course_thumbnail TEXT,
	course_price_idr INTEGER NOT NULL DEFAULT 0,
	course_level TEXT NOT NULL DEFAULT 'beginner',
	course_status TEXT NOT NULL DEFAULT 'draft',
	course_created_at DATETIME,
	course_updated_at DATETIME,
	course_deleted_at DATETIME
)`

func newCourseTestApp(t *testing.T, actorID uuid.UUID, role string) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(courseDDL).Error)

	app := fiber.New()
	// pengganti AuthMiddleware: isi Locals seperti setelah verifikasi JWT
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", actorID.String())
		c.Locals("role", role)
		return c.Next()
	})
	ctrl := NewCourseController(db)
	app.Put("/api/courses/:id", ctrl.UpdateCourse)
	app.Delete("/api/courses/:id", ctrl.DeleteCourse)
	return app, db
}

func seedCourse(t *testing.T, db *gorm.DB, ownerID uuid.UUID) model.CourseModel {
	t.Helper()
	course := model.CourseModel{
		CourseID:           uuid.New(),
		CourseInstructorID: ownerID,
		CourseTitle:        "Barbering Fundamentals",
		CourseSlug:         "barbering-fundamentals",
		CourseStatus:       model.CourseStatusPublished,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func TestUpdateCourseOtherInstructorForbidden(t *testing.T) {
	owner := uuid.New()
	app, db := newCourseTestApp(t, uuid.New(), constants.RoleInstructor) // actor bukan pemilik
	course := seedCourse(t, db, owner)

	newTitle := "Judul Bajakan"
	body, err := json.Marshal(dto.UpdateCourseRequest{Title: &newTitle})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPut, "/api/courses/"+course.CourseID.String(), bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// ditolak = tidak ada yang tersimpan
	var fresh model.CourseModel
	require.NoError(t, db.First(&fresh, "course_id = ?", course.CourseID).Error)
	assert.Equal(t, "Barbering Fundamentals", fresh.CourseTitle)
}

func TestDeleteCourseNotFound(t *testing.T) {
	app, _ := newCourseTestApp(t, uuid.New(), constants.RoleInstructor)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/courses/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
