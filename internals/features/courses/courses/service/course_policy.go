package service

import (
	"github.com/google/uuid"

	"hairnerds_backend/internals/constants"
	"hairnerds_backend/internals/features/courses/courses/model"
)

/* =========================================================
   Policy — fungsi murni, tanpa akses DB, supaya gampang dites
========================================================= */

// CanModifyCourse: admin bebas; instructor hanya course miliknya.
func CanModifyCourse(role string, actorID uuid.UUID, course model.CourseModel) bool {
	if role == constants.RoleAdmin {
		return true
	}
	return role == constants.RoleInstructor && course.CourseInstructorID == actorID
}

// CanViewCourse: course published terbuka utk semua;
// selain itu hanya pemilik dan admin.
func CanViewCourse(role string, actorID uuid.UUID, course model.CourseModel) bool {
	if course.CourseStatus == model.CourseStatusPublished {
		return true
	}
	return CanModifyCourse(role, actorID, course)
}

// CanModerateCourse: verifikasi/reject hanya admin.
func CanModerateCourse(role string) bool {
	return role == constants.RoleAdmin
}

// CanSubmitForReview: hanya dari draft atau rejected.
func CanSubmitForReview(course model.CourseModel) bool {
	return course.CourseStatus == model.CourseStatusDraft ||
		course.CourseStatus == model.CourseStatusRejected
}
