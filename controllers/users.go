package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/stanislausjustin/user-service/middleware"
	"github.com/stanislausjustin/user-service/models"
	"github.com/stanislausjustin/user-service/store"
	"github.com/stanislausjustin/user-service/utils"
)

// refreshCookiePath scopes the refreshtoken cookie to the exchange
// endpoint so it is not sent with every request.
const refreshCookiePath = "/api/user/refresh_token"

const dbTimeout = 5 * time.Second

// UserController holds the collaborators of the auth and account flows.
type UserController struct {
	Store  store.UserStore
	Tokens *utils.TokenManager
	Mailer utils.Sender
	Logger *zap.Logger
}

func NewUserController(st store.UserStore, tm *utils.TokenManager, mailer utils.Sender, logger *zap.Logger) *UserController {
	return &UserController{Store: st, Tokens: tm, Mailer: mailer, Logger: logger}
}

// SignUpInput request body for registration. Presence is checked by hand
// so missing fields produce the single "fill in all fields" message.
type SignUpInput struct {
	PersonalID      string `json:"personal_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Address         string `json:"address"`
	PhoneNumber     string `json:"phone_number"`
}

// SignInInput request body for sign-in.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailInput request body for OTP verification.
type VerifyEmailInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ProfileUpdateInput is the self-service update body. Email and password
// are not bound at all, so sending them changes nothing.
type ProfileUpdateInput struct {
	Name        *string             `json:"name"`
	Address     *string             `json:"address"`
	PhoneNumber *string             `json:"phone_number"`
	SocialLinks *models.SocialLinks `json:"social_links"`
}

// AdminUpdateInput additionally allows status and role changes.
type AdminUpdateInput struct {
	Name        *string             `json:"name"`
	Address     *string             `json:"address"`
	PhoneNumber *string             `json:"phone_number"`
	SocialLinks *models.SocialLinks `json:"social_links"`
	Status      *string             `json:"status"`
	Roles       *[]models.Role      `json:"role"`
}

// SignUp registers a new user, persists the verification OTP alongside the
// record and mails the code. A failed mail dispatch does not roll the
// registration back.
func (uc *UserController) SignUp(c *gin.Context) {
	var input SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.PersonalID == "" || input.Name == "" || input.Email == "" ||
		input.Password == "" || input.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields"})
		return
	}
	if len(input.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Your name must be at least 3 letters long"})
		return
	}
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password did not match"})
		return
	}
	if !utils.IsValidEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email"})
		return
	}
	if !utils.IsStrongPassword(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Password should be 6 to 20 characters long with at least one number, one lowercase and one uppercase letter",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if _, err := uc.Store.FindByEmail(ctx, input.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "This email is already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	otp, otpExpires := utils.GenerateOTP()

	user := models.User{
		ID: primitive.NewObjectID(),
		PersonalInfo: models.PersonalInfo{
			PersonalID: input.PersonalID,
			Name:       input.Name,
			Email:      input.Email,
			Password:   hash,
			Address:    input.Address,
			Phone:      input.PhoneNumber,
			Roles:      []models.Role{models.RoleUser},
			Avatar:     models.DefaultAvatar(),
			Status:     models.StatusActive,
		},
		OTP:          otp,
		OTPExpiresAt: otpExpires,
		IsVerified:   false,
		JoinedAt:     time.Now().UTC(),
	}

	if err := uc.Store.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "This email is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	// best-effort: the user stays registered even if the mail fails
	if err := uc.Mailer.Send(input.Email, "Verify your account", "Your OTP code is: "+otp); err != nil {
		uc.Logger.Warn("failed to send OTP email",
			zap.String("email", input.Email),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully. Please check your email for the OTP to verify your account.",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.PersonalInfo.Email,
		},
	})
}

// SignIn checks credentials and sets the refresh token cookie. Unknown
// email and wrong password get the identical answer so callers cannot
// probe for registered accounts.
func (uc *UserController) SignIn(c *gin.Context) {
	var input SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := uc.Store.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := utils.CheckPassword(user.PersonalInfo.Password, input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Credentials"})
		return
	}

	refreshToken, err := uc.Tokens.CreateRefreshToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	// token travels only in the HTTP-only cookie, never in the body
	c.SetCookie("refreshtoken", refreshToken,
		int(uc.Tokens.RefreshTTL().Seconds()), refreshCookiePath, "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign In successfully!",
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.PersonalInfo.Name,
			"email": user.PersonalInfo.Email,
		},
	})
}

// RefreshToken exchanges the refresh cookie for a fresh access token.
func (uc *UserController) RefreshToken(c *gin.Context) {
	cookie, err := c.Cookie("refreshtoken")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please sign in again"})
		return
	}

	claims, err := uc.Tokens.VerifyRefreshToken(cookie)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token."})
		return
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	// roles come from the directory so a role change takes effect on the
	// next refresh
	user, err := uc.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please sign in again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	accessToken, err := uc.Tokens.CreateAccessToken(user.ID.Hex(), user.PersonalInfo.Roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// VerifyEmail marks the account verified when the presented OTP matches
// and has not expired. Wrong code and expired code get the same answer.
func (uc *UserController) VerifyEmail(c *gin.Context) {
	var input VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Email == "" || input.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and OTP"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := uc.Store.FindByEmailAndOTP(ctx, input.Email, input.OTP, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	verified := true
	updated, err := uc.Store.UpdateByID(ctx, user.ID, store.UserUpdate{
		Verified: &verified,
		ClearOTP: true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully",
		"user": gin.H{
			"id":    updated.ID.Hex(),
			"email": updated.PersonalInfo.Email,
			"name":  updated.PersonalInfo.Name,
		},
	})
}

// UserInfo returns the authenticated caller's record. The password hash
// is excluded by serialization.
func (uc *UserController) UserInfo(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := uc.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile is the self-service update path. Only name, address,
// phone and social links can change here.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var input ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := store.UserUpdate{
		Name:        input.Name,
		Address:     input.Address,
		Phone:       input.PhoneNumber,
		SocialLinks: input.SocialLinks,
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
		return
	}
	if input.Name != nil && len(*input.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Your name must be at least 3 letters long"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	updated, err := uc.Store.UpdateByID(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    updated,
	})
}

// GetAllUsers lists every user, hashes excluded. Admin only.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	users, err := uc.Store.FindAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser is the admin update path; it may also change status and
// roles. Email and password stay immutable here too.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	var input AdminUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := store.UserUpdate{
		Name:        input.Name,
		Address:     input.Address,
		Phone:       input.PhoneNumber,
		SocialLinks: input.SocialLinks,
		Status:      input.Status,
		Roles:       input.Roles,
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	updated, err := uc.Store.UpdateByID(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    updated,
	})
}

// DeleteUser removes a user permanently. No existence check: deleting an
// unknown id still answers 200.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if err := uc.Store.DeleteByID(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// callerID reads the authenticated user's id set by the Auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	uidIf, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := uidIf.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
