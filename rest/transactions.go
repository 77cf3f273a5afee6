package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"finbook/model"
)

func (a *App) addTransaction(w http.ResponseWriter, r *http.Request) {
	payload := &model.AddTransaction{}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := a.Validator.Struct(payload); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	// Anything but income/expense is rejected here, before any storage work.
	kind, err := model.ParseKind(payload.Type)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	_, err = a.Transactions.Record(&model.Transaction{
		UserID:       payload.UserID,
		Kind:         kind,
		CategoryName: payload.Category,
		Amount:       payload.Amount,
		Date:         date,
		Note:         payload.Note,
	})
	if err != nil {
		a.storageError(w, "add_transaction", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Transaction saved successfully!"})
}

func (a *App) history(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["user_id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	entries, err := a.Transactions.HistoryByUser(userID)
	if err != nil {
		a.storageError(w, "history", err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (a *App) getCategories(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseKind(mux.Vars(r)["type"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := a.Categories.Find(kind)
	if err != nil {
		a.storageError(w, "categories", err)
		return
	}

	respondWithJSON(w, http.StatusOK, categories)
}
