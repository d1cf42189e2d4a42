package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hairnerds_backend/internals/constants"
	"hairnerds_backend/internals/features/courses/courses/model"
)

func TestCanModifyCourse(t *testing.T) {
	owner := uuid.New()
	course := model.CourseModel{CourseInstructorID: owner}

	assert.True(t, CanModifyCourse(constants.RoleAdmin, uuid.New(), course))
	assert.True(t, CanModifyCourse(constants.RoleInstructor, owner, course))
	assert.False(t, CanModifyCourse(constants.RoleInstructor, uuid.New(), course))
	assert.False(t, CanModifyCourse(constants.RoleStudent, owner, course))
}

func TestCanViewCourse(t *testing.T) {
	owner := uuid.New()

	published := model.CourseModel{CourseInstructorID: owner, CourseStatus: model.CourseStatusPublished}
	assert.True(t, CanViewCourse(constants.RoleStudent, uuid.New(), published))

	draft := model.CourseModel{CourseInstructorID: owner, CourseStatus: model.CourseStatusDraft}
	assert.True(t, CanViewCourse(constants.RoleInstructor, owner, draft))
	assert.True(t, CanViewCourse(constants.RoleAdmin, uuid.New(), draft))
	assert.False(t, CanViewCourse(constants.RoleStudent, uuid.New(), draft))
	assert.False(t, CanViewCourse(constants.RoleInstructor, uuid.New(), draft))
}

func TestCanModerateCourse(t *testing.T) {
	assert.True(t, CanModerateCourse(constants.RoleAdmin))
	assert.False(t, CanModerateCourse(constants.RoleInstructor))
	assert.False(t, CanModerateCourse(constants.RoleStudent))
}

func TestCanSubmitForReview(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{model.CourseStatusDraft, true},
		{model.CourseStatusRejected, true},
		{model.CourseStatusPending, false},
		{model.CourseStatusPublished, false},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			assert.Equal(t, tc.want, CanSubmitForReview(model.CourseModel{CourseStatus: tc.status}))
		})
	}
}
