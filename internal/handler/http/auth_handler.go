package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

const (
	oauthStateCookie    = "oauthState"
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateCookieTTL = 300
)

type AuthHandler struct {
	authUsecase usecasecontract.IAuthUseCase
	oauthConfig *oauth2.Config
	userInfoURL string
}

func NewAuthHandler(uc usecasecontract.IAuthUseCase, baseURL, googleClientID, googleClientSecret string) *AuthHandler {
	return &AuthHandler{
		authUsecase: uc,
		oauthConfig: &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  strings.TrimRight(baseURL, "/") + "/api/v1/auth/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register creates a disabled account and mails its activation code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegistrationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	_, err := h.authUsecase.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	MessageHandler(c, http.StatusAccepted, "Account created. Please check your email to activate your account.")
}

func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthenticationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	token, err := h.authUsecase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.AuthenticationResponse{Token: token})
}

// ActivateAccount redeems the code passed as ?token=.
func (h *AuthHandler) ActivateAccount(c *gin.Context) {
	code := strings.TrimSpace(c.Query("token"))
	if code == "" {
		ErrorHandler(c, http.StatusBadRequest, "activation token is required")
		return
	}

	if err := h.authUsecase.Activate(c.Request.Context(), code); err != nil {
		handleServiceError(c, err)
		return
	}

	MessageHandler(c, http.StatusOK, "Account activated successfully.")
}

func (h *AuthHandler) HandleGoogleLogin(ctx *gin.Context) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		handleServiceError(ctx, fmt.Errorf("failed to generate oauth state: %w", err))
		return
	}
	oauthStateString := base64.RawURLEncoding.EncodeToString(b)
	ctx.SetCookie(oauthStateCookie, oauthStateString, oauthStateCookieTTL, "/", "", false, true)

	url := h.oauthConfig.AuthCodeURL(oauthStateString)
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AuthHandler) HandleGoogleCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	cookieState, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(ctx, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := ctx.Query("code")
	if code == "" {
		ErrorHandler(ctx, http.StatusBadRequest, "authorization code not provided")
		return
	}

	requestCtx := ctx.Request.Context()

	token, err := h.oauthConfig.Exchange(requestCtx, code)
	if err != nil {
		ErrorHandler(ctx, http.StatusUnauthorized, "failed to exchange authorization code")
		return
	}

	client := h.oauthConfig.Client(requestCtx, token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		handleServiceError(ctx, fmt.Errorf("failed to get user info: %w", err))
		return
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		handleServiceError(ctx, fmt.Errorf("failed to decode user info: %w", err))
		return
	}
	if userInfo.Email == "" {
		ErrorHandler(ctx, http.StatusUnauthorized, "google account has no email")
		return
	}

	fName, lName := splitName(userInfo.Name)
	accessToken, err := h.authUsecase.LoginWithOAuth(requestCtx, fName, lName, userInfo.Email)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	SuccessHandler(ctx, http.StatusOK, dto.AuthenticationResponse{Token: accessToken})
}

// splitName takes the first word as first name and the rest as last name.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
