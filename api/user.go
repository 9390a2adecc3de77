package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	db "github.com/ngochandev/taphoa-BE/internal/db/sqlc"
	"github.com/ngochandev/taphoa-BE/internal/util"
	"github.com/ngochandev/taphoa-BE/internal/validator"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/idtoken"
)

type createUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type createUserResponse struct {
	User db.User `json:"user"`
}

func validateCreateUserRequest(req *createUserRequest) (violations []*FieldViolation) {
	if err := validator.ValidateEmail(req.Email); err != nil {
		violations = append(violations, fieldViolation("email", err))
	}
	if len(req.Password) < 6 {
		violations = append(violations, fieldViolation("password", errors.New("password must be at least 6 characters")))
	}

	return violations
}

// @Summary		Register a new account
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			request	body		createUserRequest	true	"Account info"
// @Success		200		{object}	createUserResponse
// @Router			/v1/auth/register [post]
func (server *Server) createUser(ctx *gin.Context) {
	req := new(createUserRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	violations := validateCreateUserRequest(req)
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}

	role := db.UserRoleStaff
	if req.Role == string(db.UserRoleOwner) {
		role = db.UserRoleOwner
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to hash password: %w", err)))
		return
	}

	arg := db.CreateUserParams{
		FullName:       req.FullName,
		Email:          req.Email,
		HashedPassword: &hashedPassword,
		Role:           role,
	}

	user, err := server.dbStore.CreateUser(context.Background(), arg)
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		switch {
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueEmailConstraint:
			err = fmt.Errorf("email %s already exists", req.Email)
			ctx.JSON(http.StatusConflict, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to create user")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, createUserResponse{User: user})
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUserResponse struct {
	User                 db.User   `json:"user"`
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}

// @Summary		Log in with email and password
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			request	body		loginUserRequest	true	"Credentials"
// @Success		200		{object}	loginUserResponse
// @Router			/v1/auth/login [post]
func (server *Server) loginUser(ctx *gin.Context) {
	req := new(loginUserRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	user, err := server.dbStore.GetUserByEmail(context.Background(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = errors.New("email not found")
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find user")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if user.HashedPassword == nil {
		err = errors.New("account does not have a password, use google login")
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	err = util.CheckPassword(req.Password, *user.HashedPassword)
	if err != nil {
		err = errors.New("incorrect password")
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	accessToken, accessPayload, err := server.tokenMaker.CreateToken(user.ID, server.config.AccessTokenDuration)
	if err != nil {
		log.Err(err).Msg("failed to create access token")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := loginUserResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessPayload.ExpiresAt.Time,
		User:                 user,
	}
	ctx.JSON(http.StatusOK, resp)
}

type loginUserWithGoogleRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// @Summary		Log in with a Google ID token
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			request	body		loginUserWithGoogleRequest	true	"Google ID token"
// @Success		200		{object}	loginUserResponse
// @Router			/v1/auth/google-login [post]
func (server *Server) loginUserWithGoogle(ctx *gin.Context) {
	req := new(loginUserWithGoogleRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Err(err).Msg("failed to bind json")
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	payload, err := server.googleIDTokenValidator.Validate(ctx, req.IDToken, server.config.GoogleClientID)
	if err != nil {
		log.Err(err).Msg("failed to validate google id token")
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	// Check identity
	user, err := server.getOrCreateGoogleUser(ctx, payload)
	if err != nil {
		log.Err(err).Msg("failed to get or create google user")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	accessToken, accessPayload, err := server.tokenMaker.CreateToken(user.ID, server.config.AccessTokenDuration)
	if err != nil {
		log.Err(err).Msg("failed to create access token")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := loginUserResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessPayload.ExpiresAt.Time,
		User:                 *user,
	}
	ctx.JSON(http.StatusOK, resp)
}

func (server *Server) getOrCreateGoogleUser(ctx *gin.Context, payload *idtoken.Payload) (*db.User, error) {
	email, _ := payload.Claims["email"].(string)
	user, err := server.dbStore.GetUserByEmail(ctx, email)
	if err == nil {
		return &user, nil
	}

	if !errors.Is(err, db.ErrRecordNotFound) {
		log.Err(err).Msg("failed to find user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// User doesn't exist - create new account
	fullName, _ := payload.Claims["name"].(string)
	newUser, err := server.dbStore.CreateUser(ctx, db.CreateUserParams{
		FullName:        fullName,
		Email:           email,
		GoogleAccountID: &payload.Subject,
		Role:            db.UserRoleStaff,
	})
	if err != nil {
		log.Err(err).Msg("failed to create user with google account")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &newUser, nil
}
