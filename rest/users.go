package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"finbook/contract"
	"finbook/model"
)

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	credentials := &model.UserLogin{}
	if err := json.NewDecoder(r.Body).Decode(credentials); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := a.Validator.Struct(credentials); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	user, err := a.Users.FindByEmail(credentials.Email)
	if errors.Is(err, contract.ErrNotFound) {
		// The two failure reasons stay distinguishable in the response; both
		// are 401. Merging them would hide account enumeration but break the
		// published contract.
		respondWithError(w, http.StatusUnauthorized, "Email not found")
		return
	}
	if err != nil {
		a.storageError(w, "login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		a.Log.Error("sign token", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user_id": user.ID,
		"token":   token,
	})
}

func (a *App) signup(w http.ResponseWriter, r *http.Request) {
	user := &model.User{}
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := a.Validator.Struct(user); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Log.Error("hash password", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Password encryption failed")
		return
	}
	user.Password = string(hash)

	if user, err = a.Users.Create(user); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			respondWithError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		a.storageError(w, "signup", err)
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		a.Log.Error("sign token", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Signup Successful!",
		"user_id": user.ID,
		"token":   token,
	})
}

func (a *App) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(userContextKey).(*model.UserClaims)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	id, err := strconv.Atoi(claims.UserID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := a.Users.FindByID(id)
	if errors.Is(err, contract.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		a.storageError(w, "me", err)
		return
	}
	// remove user password
	user.Password = ""

	respondWithJSON(w, http.StatusOK, user)
}

func (a *App) issueToken(user *model.User) (string, error) {
	claims := &model.UserClaims{
		UserID: strconv.Itoa(user.ID),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 30)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}
