package model

import (
	"errors"
	"strings"

	"github.com/burugo/thing"
)

// ErrUsernameTaken is surfaced when a registration loses the uniqueness race
// on username, whether caught by the fast-path lookup or by the database
// constraint itself.
var ErrUsernameTaken = errors.New("username_already_exists")

// User represents a registered account. The password hash is never serialized
// to clients.
type User struct {
	thing.BaseModel
	Username string `json:"username" db:"username,unique"`
	TeamName string `json:"team_name" db:"team_name"`
	Password string `json:"-" db:"password"`
}

func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

// UserInit initializes UserDB during InitDB.
func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	return err
}

// CreateUser inserts a new user. The unique index on username is the source
// of truth for duplicates; the preliminary lookup only short-circuits the
// common case. Two concurrent registrations with the same username resolve to
// exactly one success, the loser getting ErrUsernameTaken from the
// constraint.
func CreateUser(username, teamName, passwordHash string) (*User, error) {
	if IsUsernameAlreadyTaken(username) {
		return nil, ErrUsernameTaken
	}
	user := &User{
		Username: username,
		TeamName: teamName,
		Password: passwordHash,
	}
	if err := UserDB.Save(user); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername returns ErrRecordNotFound when no such user exists.
func GetUserByUsername(username string) (*User, error) {
	if username == "" {
		return nil, ErrRecordNotFound
	}
	users, err := UserDB.Where("username = ?", username).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrRecordNotFound
	}
	return users[0], nil
}

// GetUserById returns ErrRecordNotFound when no such user exists.
func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, ErrRecordNotFound
	}
	users, err := UserDB.Where("id = ?", id).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrRecordNotFound
	}
	return users[0], nil
}

func IsUsernameAlreadyTaken(username string) bool {
	users, err := UserDB.Where("username = ?", username).Fetch(0, 1)
	return err == nil && len(users) > 0
}
