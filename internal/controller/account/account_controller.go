package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizforge/config"
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
)

type AccountController struct {
	authService           service.AuthService
	recommendationService service.RecommendationService
	cfg                   *config.Config
}

func NewAccountController(
	authService service.AuthService,
	recommendationService service.RecommendationService,
	cfg *config.Config,
) *AccountController {
	return &AccountController{
		authService:           authService,
		recommendationService: recommendationService,
		cfg:                   cfg,
	}
}

func callerID(ctx *gin.Context) (uint, bool) {
	accountID, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return 0, false
	}
	return accountID, true
}

// GetMe godoc
// @Summary Get the caller's account profile
// @Tags Account
// @Produce json
// @Success 200 {object} dto.AccountResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /me [get]
func (c *AccountController) GetMe(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}

	account, err := c.authService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("accountID", accountID).Msg("GetMe: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch account"})
		return
	}
	ctx.JSON(http.StatusOK, account)
}

// GetMyStats godoc
// @Summary Get the caller's attempt statistics
// @Description Total attempts, mean score, preferred difficulty, learning speed, and weak areas.
// @Tags Account
// @Produce json
// @Success 200 {object} dto.AccountStatsDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /me/stats [get]
func (c *AccountController) GetMyStats(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}

	stats, err := c.recommendationService.GetAccountStats(accountID)
	if err != nil {
		log.Error().Err(err).Uint("accountID", accountID).Msg("GetMyStats: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compute statistics"})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GetRecommendations godoc
// @Summary Get quiz recommendations for the caller
// @Description Quizzes at the caller's preferred difficulty, newest first, excluding quizzes already attempted. Accounts with no attempts get beginner quizzes.
// @Tags Account
// @Produce json
// @Param limit query int false "Maximum number of quizzes to return"
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Router /recommendations [get]
func (c *AccountController) GetRecommendations(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		return
	}

	limit := c.cfg.Recommendation.DefaultLimit
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit: must be a positive integer"})
			return
		}
		limit = parsed
	}

	quizzes, err := c.recommendationService.Recommend(accountID, limit)
	if err != nil {
		log.Error().Err(err).Uint("accountID", accountID).Msg("GetRecommendations: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compute recommendations"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}
