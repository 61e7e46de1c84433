package quiz

import (
	"context"
	"errors"
	"fmt"

	"llm-quiz/config"
	"llm-quiz/internal/core/generate"
	"llm-quiz/internal/database"
	"llm-quiz/internal/database/model"
	ingestsvc "llm-quiz/internal/services/ingest"
	"llm-quiz/pkg/logger"
)

// GenerateRequest describes one generation run: which documents feed the
// context and how many questions of each type every subtopic should get.
type GenerateRequest struct {
	UserID  int64
	Subject string
	DocIDs  []int64
	Quotas  generate.Quotas
}

// GenerateForSubtopics runs the full generation pipeline: load the ingested
// chunks of the requested documents, inflate the quotas for surplus, run the
// batch loop and persist everything. The returned questions are the collected
// set trimmed to the caller's original counts; extras are stored but not
// returned.
func GenerateForSubtopics(ctx context.Context, req GenerateRequest) ([]model.Question, error) {
	if len(req.DocIDs) == 0 {
		return nil, errors.New("no documents selected")
	}
	if len(req.Quotas) == 0 {
		return nil, errors.New("no question quotas requested")
	}
	for sub, types := range req.Quotas {
		for qt, n := range types {
			if !qt.Valid() {
				return nil, fmt.Errorf("unknown question type %q", qt)
			}
			if n <= 0 {
				return nil, fmt.Errorf("non-positive count for subtopic %q type %q", sub, qt)
			}
		}
	}

	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	chunks, err := ingestsvc.ChunkContents(db, req.DocIDs)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, errors.New("selected documents have no ingested content")
	}

	factor := config.Cfg.Generation.InflationFactor
	inflated := req.Quotas.Inflate(factor)
	logger.Info("%v: generating for %d subtopics over %d chunks (inflation %.1fx)",
		config.ModuleQuiz, len(req.Quotas), len(chunks), factor)

	batcher := generate.NewBatcher()
	result, err := batcher.GenerateBatch(ctx, chunks, inflated)
	if err != nil {
		return nil, err
	}

	// The loop ran against inflated targets; trim back to what the caller
	// asked for and bank the rest as substitution inventory.
	trimToRequested(result, req.Quotas)

	saved, err := SaveResult(db, req.UserID, req.Subject, result)
	if err != nil {
		return nil, err
	}

	out := make([]model.Question, 0, len(saved))
	for _, q := range saved {
		if !q.IsExtra {
			out = append(out, q)
		}
	}
	return out, nil
}

// trimToRequested moves everything beyond the caller's original counts into
// the extra pool. finalize already capped at the inflated targets; this second
// cut brings the collected sequences down to the requested ones.
func trimToRequested(result *generate.Result, requested generate.Quotas) {
	for sub, types := range requested {
		for qt, want := range types {
			qs := result.Questions[sub][qt]
			if len(qs) <= want {
				continue
			}
			as := result.Answers[sub][qt]
			overflow := make([]generate.QA, 0, len(qs)-want)
			for i := want; i < len(qs); i++ {
				overflow = append(overflow, generate.QA{Question: qs[i], Answer: as[i]})
			}
			result.Questions[sub][qt] = qs[:want]
			result.Answers[sub][qt] = as[:want]
			result.Extras[sub][qt] = append(overflow, result.Extras[sub][qt]...)
		}
	}
}

// RegenerateQuestion replaces one stored question in place with a banked extra
// of the same subtopic and type. No model call happens here; the extra pool is
// the substitution inventory.
func RegenerateQuestion(userID, questionID int64) (*model.Question, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	current, err := GetQuestionByID(db, questionID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, errors.New("question does not belong to user")
	}
	if current.IsExtra {
		return nil, errors.New("cannot regenerate a banked extra")
	}

	extra, err := PopExtra(db, userID, current.Subtopic, current.QuestionType)
	if err != nil {
		logger.Warn("%v: no extra left for subtopic %q type %q", config.ModuleQuiz, current.Subtopic, current.QuestionType)
		return nil, fmt.Errorf("no replacement available for subtopic %q", current.Subtopic)
	}

	if err := ReplaceQuestion(db, current, extra); err != nil {
		return nil, err
	}
	return GetQuestionByID(db, questionID)
}

// DeleteQuestion removes one of the user's questions.
func DeleteQuestion(userID, questionID int64) error {
	db, err := database.GetDB()
	if err != nil {
		return err
	}
	return DeleteQuestionByID(db, userID, questionID)
}
