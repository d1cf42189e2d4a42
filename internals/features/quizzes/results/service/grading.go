package service

import (
	"strings"

	"github.com/google/uuid"

	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	"hairnerds_backend/internals/features/quizzes/results/dto"
)

type GradedOutcome struct {
	Answered           int
	CorrectAnswers     int
	TotalObtainedMarks int
}

// Grade menilai jawaban terhadap answer bank.
// Aturan per tipe:
//   - single_choice   : tepat satu pilihan dan pilihan itu is_true
//   - multiple_choice : himpunan pilihan == himpunan jawaban benar (tanpa partial credit)
//   - fill_blank      : cocok case-insensitive (trim) dengan salah satu baris is_true
//
// Skor soal diberikan utuh saat benar; pertanyaan tanpa jawaban tidak dihitung answered.
func Grade(questions []quizModel.QuestionModel, banks map[uuid.UUID][]quizModel.AnswerBankModel, answers []dto.SubmittedAnswer) GradedOutcome {
	answerByQuestion := make(map[uuid.UUID]dto.SubmittedAnswer, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuestionID] = a
	}

	var out GradedOutcome
	for _, q := range questions {
		sub, ok := answerByQuestion[q.QuestionID]
		if !ok || isEmptyAnswer(sub) {
			continue
		}
		out.Answered++

		if isCorrect(q, banks[q.QuestionID], sub) {
			out.CorrectAnswers++
			out.TotalObtainedMarks += q.QuestionScore
		}
	}
	return out
}

func isEmptyAnswer(sub dto.SubmittedAnswer) bool {
	if len(sub.AnswerBankIDs) > 0 {
		return false
	}
	return sub.AnswerText == nil || strings.TrimSpace(*sub.AnswerText) == ""
}

func isCorrect(q quizModel.QuestionModel, bank []quizModel.AnswerBankModel, sub dto.SubmittedAnswer) bool {
	switch q.QuestionType {
	case quizModel.QuestionTypeSingleChoice:
		if len(sub.AnswerBankIDs) != 1 {
			return false
		}
		for _, b := range bank {
			if b.AnswerBankID == sub.AnswerBankIDs[0] {
				return b.AnswerBankIsTrue
			}
		}
		return false

	case quizModel.QuestionTypeMultipleChoice:
		trueSet := make(map[uuid.UUID]struct{})
		for _, b := range bank {
			if b.AnswerBankIsTrue {
				trueSet[b.AnswerBankID] = struct{}{}
			}
		}
		if len(trueSet) == 0 || len(sub.AnswerBankIDs) != len(trueSet) {
			return false
		}
		seen := make(map[uuid.UUID]struct{}, len(sub.AnswerBankIDs))
		for _, id := range sub.AnswerBankIDs {
			if _, dup := seen[id]; dup {
				return false
			}
			seen[id] = struct{}{}
			if _, ok := trueSet[id]; !ok {
				return false
			}
		}
		return true

	case quizModel.QuestionTypeFillBlank:
		if sub.AnswerText == nil {
			return false
		}
		got := strings.ToLower(strings.TrimSpace(*sub.AnswerText))
		if got == "" {
			return false
		}
		for _, b := range bank {
			if b.AnswerBankIsTrue && strings.ToLower(strings.TrimSpace(b.AnswerBankAnswer)) == got {
				return true
			}
		}
		return false
	}
	return false
}
