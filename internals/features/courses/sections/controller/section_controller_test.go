package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
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
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	"hairnerds_backend/internals/features/courses/sections/dto"
	"hairnerds_backend/internals/features/courses/sections/model"
)

// Skema dibuat manual: tag default:gen_random_uuid() milik PostgreSQL
// tidak bisa dimigrasi otomatis ke SQLite.
var sectionDDL = []string{
	`CREATE TABLE courses (
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
	)`,
	`CREATE TABLE sections (
		section_id TEXT PRIMARY KEY,
		section_course_id TEXT NOT NULL,
		section_title TEXT NOT NULL,
		section_sequence INTEGER NOT NULL DEFAULT 0,
		section_created_at DATETIME,
		section_updated_at DATETIME,
		section_deleted_at DATETIME
	)`,
}

func newSectionTestApp(t *testing.T, instructorID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, ddl := range sectionDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}

	app := fiber.New()
	// pengganti AuthMiddleware: isi Locals seperti setelah verifikasi JWT
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", instructorID.String())
		c.Locals("role", constants.RoleInstructor)
		return c.Next()
	})
	ctrl := NewSectionController(db)
	app.Put("/api/sections/sequences", ctrl.UpdateSequences)
	return app, db
}

func seedCourseWithSections(t *testing.T, db *gorm.DB, instructorID uuid.UUID, n int) (courseModel.CourseModel, []model.SectionModel) {
	t.Helper()
	course := courseModel.CourseModel{
		CourseID:           uuid.New(),
		CourseInstructorID: instructorID,
		CourseTitle:        "Barbering Fundamentals",
		CourseSlug:         "barbering-fundamentals",
		CourseStatus:       courseModel.CourseStatusPublished,
	}
	require.NoError(t, db.Create(&course).Error)

	sections := make([]model.SectionModel, 0, n)
	for i := 0; i < n; i++ {
		s := model.SectionModel{
			SectionID:       uuid.New(),
			SectionCourseID: course.CourseID,
			SectionTitle:    fmt.Sprintf("Bab %d", i+1),
			SectionSequence: i + 1,
		}
		require.NoError(t, db.Create(&s).Error)
		sections = append(sections, s)
	}
	return course, sections
}

func putSequences(t *testing.T, app *fiber.App, req dto.UpdateSequencesRequest) (int, []dto.SectionDTO) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(fiber.MethodPut, "/api/sections/sequences", bytes.NewReader(body))
	httpReq.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data []dto.SectionDTO `json:"data"`
	}
	_ = json.Unmarshal(raw, &envelope)
	return resp.StatusCode, envelope.Data
}

func TestUpdateSequencesSwapIsAtomic(t *testing.T) {
	instructorID := uuid.New()
	app, db := newSectionTestApp(t, instructorID)
	course, sections := seedCourseWithSections(t, db, instructorID, 2)

	code, got := putSequences(t, app, dto.UpdateSequencesRequest{
		CourseID: course.CourseID,
		Sequences: []dto.SectionSequencing{
			{SectionID: sections[0].SectionID, Sequence: 2},
			{SectionID: sections[1].SectionID, Sequence: 1},
		},
	})
	require.Equal(t, fiber.StatusOK, code)

	// read langsung setelah swap: urutan sudah terbalik
	require.Len(t, got, 2)
	assert.Equal(t, sections[1].SectionID, got[0].SectionID)
	assert.Equal(t, sections[0].SectionID, got[1].SectionID)

	var persisted []model.SectionModel
	require.NoError(t, db.
		Where("section_course_id = ?", course.CourseID).
		Order("section_sequence ASC").
		Find(&persisted).Error)
	assert.Equal(t, sections[1].SectionID, persisted[0].SectionID)
}

func TestUpdateSequencesForeignSectionRollsBackAll(t *testing.T) {
	instructorID := uuid.New()
	app, db := newSectionTestApp(t, instructorID)
	course, sections := seedCourseWithSections(t, db, instructorID, 2)

	code, _ := putSequences(t, app, dto.UpdateSequencesRequest{
		CourseID: course.CourseID,
		Sequences: []dto.SectionSequencing{
			{SectionID: sections[0].SectionID, Sequence: 99},
			{SectionID: uuid.New(), Sequence: 1}, // bukan milik course ini
		},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	// rollback total: sequence pertama tidak ikut berubah
	var fresh model.SectionModel
	require.NoError(t, db.First(&fresh, "section_id = ?", sections[0].SectionID).Error)
	assert.Equal(t, 1, fresh.SectionSequence)
}

func TestUpdateSequencesOtherInstructorForbidden(t *testing.T) {
	owner := uuid.New()
	app, db := newSectionTestApp(t, uuid.New()) // actor bukan pemilik

	course := courseModel.CourseModel{
		CourseID:           uuid.New(),
		CourseInstructorID: owner,
		CourseTitle:        "Advanced Coloring",
		CourseSlug:         "advanced-coloring",
	}
	require.NoError(t, db.Create(&course).Error)
	sec := model.SectionModel{
		SectionID:       uuid.New(),
		SectionCourseID: course.CourseID,
		SectionTitle:    "Bab 1",
		SectionSequence: 1,
	}
	require.NoError(t, db.Create(&sec).Error)

	code, _ := putSequences(t, app, dto.UpdateSequencesRequest{
		CourseID: course.CourseID,
		Sequences: []dto.SectionSequencing{
			{SectionID: sec.SectionID, Sequence: 99},
		},
	})
	assert.Equal(t, fiber.StatusForbidden, code)

	// ditolak = tidak ada yang tersimpan
	var fresh model.SectionModel
	require.NoError(t, db.First(&fresh, "section_id = ?", sec.SectionID).Error)
	assert.Equal(t, 1, fresh.SectionSequence)
}
