package quiz

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
)

type QuizController struct {
	quizService       service.QuizService
	submissionService service.SubmissionService
}

func NewQuizController(quizService service.QuizService, submissionService service.SubmissionService) *QuizController {
	return &QuizController{
		quizService:       quizService,
		submissionService: submissionService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}

func callerID(ctx *gin.Context) (uint, bool) {
	accountID, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return 0, false
	}
	return accountID, true
}

// CreateQuiz godoc
// @Summary Author a new quiz
// @Description Create a quiz with its questions and options in one request. Any authenticated account may author.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_data body dto.QuizCreateDTO true "Quiz with questions and options"
// @Success 201 {object} dto.QuizResponseDTO "Quiz created"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuiz: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quizResp, err := c.quizService.CreateQuiz(accountID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("CreateQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create quiz"})
		return
	}
	ctx.JSON(http.StatusCreated, quizResp)
}

// GetAllQuizzes godoc
// @Summary List all quizzes
// @Tags Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *QuizController) GetAllQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetAllQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("GetAllQuizzes: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list quizzes"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuizDetails godoc
// @Summary Get a quiz with its questions and options
// @Description Option correctness flags are included only when the caller authored the quiz.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuizDetails(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}

	details, err := c.quizService.GetQuizDetails(quizID, accountID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("GetQuizDetails: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch quiz"})
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// UpdateQuiz godoc
// @Summary Update quiz metadata
// @Description Only the authoring account may update title, description, and difficulty.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param quiz_data body dto.QuizUpdateDTO true "Updated metadata"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not the quiz author"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}

	var req dto.QuizUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	updated, err := c.quizService.UpdateQuiz(quizID, accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrForbidden):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("quizID", quizID).Msg("UpdateQuiz: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update quiz"})
		}
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Soft-deletes the quiz. Only the authoring account may delete. Recorded attempts stay readable.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 204 "Quiz deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the quiz author"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}

	if err := c.quizService.DeleteQuiz(quizID, accountID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrForbidden):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("quizID", quizID).Msg("DeleteQuiz: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete quiz"})
		}
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAttempt godoc
// @Summary Submit answers for a quiz
// @Description Grades the submission against the stored correct options and records one attempt with one answer per question. Incomplete or inconsistent submissions are rejected whole.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.AttemptSubmitDTO true "Chosen option per question plus elapsed duration"
// @Success 201 {object} dto.AttemptDetailDTO "Graded attempt"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}

	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	log.Info().Uint("quizID", quizID).Uint("accountID", accountID).Int("answerCount", len(req.Answers)).Msg("Received quiz attempt submission")

	detail, err := c.submissionService.SubmitQuiz(quizID, accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrInvalidSubmission):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitAttempt: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit attempt"})
		}
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// GetMyAttempts godoc
// @Summary List the caller's attempts for a quiz
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/my-attempts [get]
func (c *QuizController) GetMyAttempts(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		return
	}

	attempts, err := c.submissionService.GetAccountAttemptsForQuiz(quizID, accountID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("GetMyAttempts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list attempts"})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttemptDetails godoc
// @Summary Get a graded attempt with its answers
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another account"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *QuizController) GetAttemptDetails(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	detail, err := c.submissionService.GetAttemptDetails(attemptID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrForbidden):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch attempt"})
		}
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
