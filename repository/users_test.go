package repository

import (
	"database/sql"
	"log"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"finbook/contract"
	"finbook/model"
)

func newTestUser() *model.User {
	return &model.User{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "$2a$10$hash",
	}
}

func NewMock() (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	return db, mock
}

func TestUserRepoMysql_Create(t *testing.T) {
	query := regexp.QuoteMeta("INSERT INTO user (first_name, last_name, email, password) VALUES (?, ?, ?, ?)")

	t.Run("assigns the new id", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := &UserRepoMysql{db}

		mock.ExpectExec(query).
			WithArgs("Alice", "Smith", "alice@example.com", "$2a$10$hash").
			WillReturnResult(sqlmock.NewResult(1, 1))

		user, err := repo.Create(newTestUser())
		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
	})
	t.Run("duplicate email", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := &UserRepoMysql{db}

		mock.ExpectExec(query).
			WithArgs("Alice", "Smith", "alice@example.com", "$2a$10$hash").
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		_, err := repo.Create(newTestUser())
		assert.ErrorIs(t, err, contract.ErrDuplicateEmail)
	})
}

func TestUserRepoMysql_FindByEmail(t *testing.T) {
	query := regexp.QuoteMeta("SELECT user_id, first_name, last_name, email, password FROM user WHERE email = ?")

	t.Run("user exists", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := &UserRepoMysql{db}

		rows := sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "email", "password"}).
			AddRow(1, "Alice", "Smith", "alice@example.com", "$2a$10$hash")
		mock.ExpectQuery(query).WithArgs("alice@example.com").WillReturnRows(rows)

		user, err := repo.FindByEmail("alice@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "Alice", user.FirstName)
		assert.Equal(t, 1, user.ID)
	})
	t.Run("user does not exist", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := &UserRepoMysql{db}

		rows := sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "email", "password"})
		mock.ExpectQuery(query).WithArgs("nobody@example.com").WillReturnRows(rows)

		_, err := repo.FindByEmail("nobody@example.com")
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})
}

func TestUserRepoMysql_FindByID(t *testing.T) {
	query := regexp.QuoteMeta("SELECT user_id, first_name, last_name, email, password FROM user WHERE user_id = ?")

	t.Run("user exists", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := &UserRepoMysql{db}

		rows := sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "email", "password"}).
			AddRow(2, "Bob", "Jones", "bob@example.com", "$2a$10$hash")
		mock.ExpectQuery(query).WithArgs(2).WillReturnRows(rows)

		user, err := repo.FindByID(2)
		assert.NoError(t, err)
		assert.Equal(t, "bob@example.com", user.Email)
	})
	t.Run("user does not exist", func(t *testing.T) {
		db, mock := NewMock()
		defer db.Close()
		repo := &UserRepoMysql{db}

		rows := sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "email", "password"})
		mock.ExpectQuery(query).WithArgs(99).WillReturnRows(rows)

		_, err := repo.FindByID(99)
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})
}
