package controller

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairnerds_backend/internals/features/quizzes/quiz/dto"
	"hairnerds_backend/internals/features/quizzes/quiz/model"
)

func TestValidateAnswerKey(t *testing.T) {
	t.Run("single_choice tanpa jawaban benar ditolak", func(t *testing.T) {
		err := validateAnswerKey(dto.UpsertQuestionRequest{
			Type: model.QuestionTypeSingleChoice,
			Answers: []dto.UpsertAnswerRequest{
				{Answer: "Fade", IsTrue: false},
				{Answer: "Taper", IsTrue: false},
			},
		})
		require.Error(t, err)
		var fe *fiber.Error
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
	})

	t.Run("single_choice dengan dua jawaban benar ditolak", func(t *testing.T) {
		err := validateAnswerKey(dto.UpsertQuestionRequest{
			Type: model.QuestionTypeSingleChoice,
			Answers: []dto.UpsertAnswerRequest{
				{Answer: "Fade", IsTrue: true},
				{Answer: "Taper", IsTrue: true},
			},
		})
		require.Error(t, err)
	})

	t.Run("multiple_choice minimal satu jawaban benar", func(t *testing.T) {
		err := validateAnswerKey(dto.UpsertQuestionRequest{
			Type: model.QuestionTypeMultipleChoice,
			Answers: []dto.UpsertAnswerRequest{
				{Answer: "Gunting", IsTrue: false},
			},
		})
		require.Error(t, err)

		err = validateAnswerKey(dto.UpsertQuestionRequest{
			Type: model.QuestionTypeMultipleChoice,
			Answers: []dto.UpsertAnswerRequest{
				{Answer: "Gunting", IsTrue: true},
				{Answer: "Sisir", IsTrue: true},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("kunci valid lolos", func(t *testing.T) {
		err := validateAnswerKey(dto.UpsertQuestionRequest{
			Type: model.QuestionTypeSingleChoice,
			Answers: []dto.UpsertAnswerRequest{
				{Answer: "Fade", IsTrue: true},
				{Answer: "Taper", IsTrue: false},
			},
		})
		assert.NoError(t, err)
	})
}
