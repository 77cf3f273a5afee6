package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"finbook/contract"
	"finbook/model"
)

type UserRepoMysql struct {
	db *sql.DB
}

func NewUserRepoMysql(db *sql.DB) *UserRepoMysql {
	return &UserRepoMysql{db: db}
}

func (u *UserRepoMysql) Create(user *model.User) (*model.User, error) {
	statement := "INSERT INTO user (first_name, last_name, email, password) VALUES (?, ?, ?, ?)"
	result, err := u.db.Exec(statement, user.FirstName, user.LastName, user.Email, user.Password)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, contract.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = int(id)
	return user, nil
}

func (u *UserRepoMysql) FindByEmail(email string) (*model.User, error) {
	statement := "SELECT user_id, first_name, last_name, email, password FROM user WHERE email = ?"

	user := &model.User{}
	err := u.db.QueryRow(statement, email).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (u *UserRepoMysql) FindByID(id int) (*model.User, error) {
	statement := "SELECT user_id, first_name, last_name, email, password FROM user WHERE user_id = ?"

	user := &model.User{}
	err := u.db.QueryRow(statement, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

// isDuplicateEntry reports MySQL error 1062 (ER_DUP_ENTRY). Unique indexes on
// user.email and the category name columns turn write races into this error.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
