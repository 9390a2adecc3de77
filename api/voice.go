package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngochandev/taphoa-BE/internal/gemini"
	"github.com/ngochandev/taphoa-BE/internal/voice"
	"github.com/rs/zerolog/log"
)

type parseImportCommandRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// @Summary		Parse a spoken stock-intake command
// @Description	Interprets a Vietnamese transcript such as "nhập 10 thùng bia Tiger giá bán 320 nghìn" without calling any external service. Returns 422 when no known phrasing matches.
// @Tags			voice
// @Accept			json
// @Produce		json
// @Param			request	body		parseImportCommandRequest	true	"Transcript from speech recognition"
// @Success		200		{object}	voice.ImportCommand
// @Security		BearerAuth
// @Router			/v1/voice/import-command [post]
func (server *Server) parseImportCommand(ctx *gin.Context) {
	req := new(parseImportCommandRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	command := voice.ParseImportCommand(req.Transcript)
	if command == nil {
		ctx.JSON(http.StatusUnprocessableEntity, errorResponse(ErrVoiceCommandUnclear))
		return
	}

	ctx.JSON(http.StatusOK, command)
}

// @Summary		Extract a stock-intake intent from a voice recording
// @Description	Sends the audio to Gemini and returns the structured intent. Fields the model left blank are filled with defaults and listed in defaulted_fields so the client can ask the user to confirm them.
// @Tags			voice
// @Accept			multipart/form-data
// @Produce		json
// @Param			audio	formData	file	true	"Voice recording (webm/ogg/wav)"
// @Success		200		{object}	gemini.ImportIntent
// @Security		BearerAuth
// @Router			/v1/voice/import [post]
func (server *Server) extractImportIntent(ctx *gin.Context) {
	file, err := ctx.FormFile("audio")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("audio file is required")))
		return
	}

	audio, err := readMultipartFile(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	intent, err := server.geminiService.ExtractImportIntent(ctx, audio, mimeType)
	if err != nil {
		var malformed *gemini.MalformedResponseError
		switch {
		case errors.Is(err, gemini.ErrServiceUnavailable):
			log.Err(err).Msg("gemini service unavailable")
			ctx.JSON(http.StatusServiceUnavailable, errorResponse(err))
		case errors.As(err, &malformed):
			log.Warn().Str("raw", malformed.Raw).Msg("gemini returned undecodable response")
			ctx.JSON(http.StatusUnprocessableEntity, errorResponse(ErrVoiceCommandUnclear))
		default:
			log.Err(err).Msg("failed to extract import intent")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		}
		return
	}

	ctx.JSON(http.StatusOK, intent)
}
