package rest

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"finbook/config"
	"finbook/contract"
	"finbook/repository"
)

type App struct {
	Router       *mux.Router
	Users        contract.UserRepo
	Categories   contract.CategoryRepo
	Transactions contract.TransactionRepo

	Validator  *validator.Validate
	Translator ut.Translator

	Log *slog.Logger

	jwtSecret      []byte
	allowedOrigins []string
}

func (a *App) Init(cfg *config.Config, db *sql.DB, logger *slog.Logger) {
	a.Users = repository.NewUserRepoMysql(db)
	a.Categories = repository.NewCategoryRepoMysql(db)
	a.Transactions = repository.NewTransactionRepoMysql(db)

	a.Log = logger
	a.jwtSecret = []byte(cfg.JWTSecret)
	a.allowedOrigins = cfg.CORSAllowedOrigins

	a.initValidation()

	a.Router = mux.NewRouter()
	a.initializeRoutes()
}

func (a *App) initValidation() {
	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)

	var found bool
	a.Translator, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(a.Validator, a.Translator); err != nil {
		log.Fatal(err)
	}
}

func (a *App) Run(addr string) {
	a.Log.Info("listening", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, a.handler()))
}

// handler wraps the router with CORS when origins are configured. The
// allowed-origin list always comes from configuration, never a wildcard.
func (a *App) handler() http.Handler {
	if len(a.allowedOrigins) == 0 {
		return a.Router
	}
	return handlers.CORS(
		handlers.AllowedOrigins(a.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)(a.Router)
}

func (a *App) initializeRoutes() {
	a.Router.HandleFunc("/login", a.login).Methods(http.MethodPost)
	a.Router.HandleFunc("/signup", a.signup).Methods(http.MethodPost)
	a.Router.HandleFunc("/add_transaction", a.addTransaction).Methods(http.MethodPost)
	a.Router.HandleFunc("/history/{user_id:[0-9]+}", a.history).Methods(http.MethodGet)
	a.Router.HandleFunc("/categories/{type}", a.getCategories).Methods(http.MethodGet)

	// Auth route
	s := a.Router.PathPrefix("/me").Subrouter()
	s.Use(a.JwtVerify)
	s.HandleFunc("", a.me).Methods(http.MethodGet)
}
