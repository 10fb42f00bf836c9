package handlers

import (
	"errors"
	"net/http"

	"uniprep/internal/models"
	"uniprep/internal/repository"
	utility "uniprep/internal/utility"
	httpClient "uniprep/internal/utility/http"
)

// Register creates an unverified account and mails a one-time code. A
// pending registration for the same email is overwritten with a fresh code.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body models.RegisterRequest
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Name, a valid email and a password of at least 6 characters are required", err)
		return
	}
	email := body.Email

	ctx, cancel := h.context(r)
	defer cancel()

	existing, err := h.stores.Users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error registering user", err)
		return
	}
	if existing != nil && existing.IsVerified {
		httpClient.RespondError(w, http.StatusBadRequest, "Email already registered.", nil)
		return
	}

	password, err := utility.HashPassword(body.Password)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error registering user", err)
		return
	}
	code := utility.GenerateRandomCode()
	expires := h.now().Add(h.opts.OTPTTL)

	if existing != nil {
		existing.Name = body.Name
		existing.Password = password
		existing.OTP = code
		existing.OTPExpires = &expires
		err = h.stores.Users.UpdatePending(ctx, existing)
	} else {
		err = h.stores.Users.Create(ctx, &models.User{
			Name:       body.Name,
			Email:      email,
			Password:   password,
			OTP:        code,
			OTPExpires: &expires,
		})
	}
	if err != nil {
		respondWriteError(w, err, "Email already registered.", "Error registering user")
		return
	}

	if err := utility.SendOTP(h.mailer, email, code, h.opts.OTPTTL); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to send OTP. Try again.", err)
		return
	}
	httpClient.RespondSuccess(w, "OTP sent to email.", nil)
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body models.VerifyOTPRequest
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Email and a 6 digit OTP are required", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	user, err := h.stores.Users.FindByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpClient.RespondError(w, http.StatusBadRequest, "User not found.", nil)
			return
		}
		httpClient.RespondError(w, http.StatusInternalServerError, "Error verifying OTP", err)
		return
	}

	if user.OTP == "" || user.OTP != body.OTP || user.OTPExpires == nil || h.now().After(*user.OTPExpires) {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid or expired OTP.", nil)
		return
	}

	if err := h.stores.Users.MarkVerified(ctx, user.ID); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error verifying OTP", err)
		return
	}
	httpClient.RespondSuccess(w, "Email verified.", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body models.LoginRequest
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Email and password are required", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	user, err := h.stores.Users.FindByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpClient.RespondError(w, http.StatusBadRequest, "User not found.", nil)
			return
		}
		httpClient.RespondError(w, http.StatusInternalServerError, "Error logging in", err)
		return
	}
	if !user.IsVerified {
		httpClient.RespondError(w, http.StatusBadRequest, "Please verify your email first.", nil)
		return
	}
	if !utility.VerifyPassword(body.Password, user.Password) {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid credentials.", nil)
		return
	}

	token, err := utility.GenerateToken(*user, h.opts.JWTSecret, h.opts.TokenTTL)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error logging in", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful.",
		Token:   token,
		User: models.UserSummary{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role(),
		},
	})
}
