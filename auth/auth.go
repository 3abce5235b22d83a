package auth

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"lnzh/globals"
	"lnzh/middleware"
	"lnzh/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// Login checks the shared admin password against its bcrypt hash and
// issues an admin token for the orders log.
//
// POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Password required")
		return
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		utils.RespondWithError(w, http.StatusInternalServerError, "Login not configured")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Wrong password")
		return
	}

	token, err := generateToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "expiresIn": int(tokenTTL.Seconds())})
}

func generateToken() (string, error) {
	claims := &middleware.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
