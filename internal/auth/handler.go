package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	tokens   *TokenService
	validate *validator.Validate
	logger   *zap.Logger

	// production switches cookie attributes: Secure + SameSite=None for the
	// cross-site deployed frontend, SameSite=Strict in development.
	production bool
}

func NewHandler(tokens *TokenService, logger *zap.Logger, production bool) *Handler {
	return &Handler{
		tokens:     tokens,
		validate:   validator.New(),
		logger:     logger,
		production: production,
	}
}

// IssueToken handles POST /jwt: signs a token for the submitted identity and
// sets it into the token cookie.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var identity models.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		httpx.Error(w, httpx.ErrBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(identity); err != nil {
		httpx.Error(w, httpx.ErrBadRequest, "A valid email is required")
		return
	}

	token, err := h.tokens.Issue(identity.Email)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		httpx.Error(w, err, "Failed to issue token")
		return
	}

	http.SetCookie(w, h.cookie(token, int(h.tokens.TTL()/time.Second)))
	httpx.JSON(w, http.StatusOK, models.TokenResponse{Success: true, Token: token})
}

// Logout handles GET /logout: clears the token cookie. Tokens are not
// tracked server-side, so this is purely a client-side revocation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
		MaxAge:   maxAge,
	}
}
