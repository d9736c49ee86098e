package service

import (
	"context"
	"fmt"
	"movie_review/db"
	"movie_review/internal/repository"
	"movie_review/model"
	"movie_review/pkg/response"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultUserListLimit = 50
	defaultUserRole      = "user"
	insertUserAttempts   = 2
)

type IUserService interface {
	SaveUser(ctx context.Context, input SaveUserInput) (interface{}, error)
	ListUsers(ctx context.Context, limit int) (*model.UserListRes, error)
}

type UserService struct {
	userRepo repository.IUserRepository
	hashCost int
	now      func() time.Time
}

func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

//------------------------------------------
//------------------------------------------

type SaveUserInput struct {
	Username string
	Password string
	Action   string
}

//------------------------------------------
//------------------------------------------

// SaveUser upserts, inserts or deletes a credential row depending on Action.
// It returns a *model.UserSaveRes or, for deletes, a *model.UserDeleteRes.
func (u *UserService) SaveUser(ctx context.Context, input SaveUserInput) (interface{}, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	action := model.UserAction(strings.TrimSpace(input.Action))
	if action == "" {
		action = model.UserActionUpsert
	}
	switch action {
	case model.UserActionUpsert, model.UserActionInsert, model.UserActionDelete:
	default:
		return nil, ErrInvalidUserAction
	}

	table := u.userRepo.UsersTable(ctx)

	if action == model.UserActionDelete {
		deleted, err := u.userRepo.DeleteUser(ctx, table, username)
		if err != nil {
			return nil, storageError(response.DbDeleteFailed, err)
		}
		return &model.UserDeleteRes{Success: true, Deleted: deleted}, nil
	}

	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", response.HashFailed, err)
	}

	if action == model.UserActionInsert {
		return u.insertNewUser(ctx, table, username, string(hash))
	}
	return u.upsertUser(ctx, table, username, string(hash))
}

func (u *UserService) ListUsers(ctx context.Context, limit int) (*model.UserListRes, error) {
	limit = ClampLimit(limit, DefaultUserListLimit)
	table := u.userRepo.UsersTable(ctx)

	users, err := u.userRepo.ListUsers(ctx, table, limit)
	if err != nil {
		return nil, storageError(response.DbQueryFailed, err)
	}
	return &model.UserListRes{
		Success: true,
		Table:   table,
		Count:   len(users),
		Rows:    users,
	}, nil
}

//------------------------------------------
//------------------------------------------

// insertNewUser always creates a row. A taken username is retried once with
// a timestamp suffix.
func (u *UserService) insertNewUser(ctx context.Context, table string, username string, hash string) (*model.UserSaveRes, error) {
	withRole := u.userRepo.HasRoleColumn(ctx, table)
	attemptUsername := username

	var lastErr error
	for attempt := 0; attempt < insertUserAttempts; attempt++ {
		user := &model.User{
			Username:     attemptUsername,
			PasswordHash: hash,
			Role:         defaultUserRole,
		}
		id, err := u.userRepo.InsertUser(ctx, table, user, withRole)
		if err == nil {
			return &model.UserSaveRes{
				Success:  true,
				Action:   "inserted",
				Id:       id,
				Username: attemptUsername,
			}, nil
		}
		if !db.IsUniqueViolation(err) {
			return nil, storageError(response.DbInsertFailed, err)
		}
		lastErr = err
		attemptUsername = username + "_" + strconv.FormatInt(u.now().Unix(), 10)
	}
	return nil, storageError(response.UserInsertFailed, lastErr)
}

func (u *UserService) upsertUser(ctx context.Context, table string, username string, hash string) (*model.UserSaveRes, error) {
	id, exists, err := u.userRepo.GetUserIdByUsername(ctx, table, username)
	if err != nil {
		return nil, storageError(response.DbQueryFailed, err)
	}

	if exists {
		if err = u.userRepo.UpdatePasswordHash(ctx, table, id, hash); err != nil {
			return nil, storageError(response.DbUpdateFailed, err)
		}
		return &model.UserSaveRes{Success: true, Action: "updated", Id: id, Username: username}, nil
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         defaultUserRole,
	}
	id, err = u.userRepo.InsertUser(ctx, table, user, u.userRepo.HasRoleColumn(ctx, table))
	if err != nil {
		return nil, storageError(response.DbInsertFailed, err)
	}
	return &model.UserSaveRes{Success: true, Action: "created", Id: id, Username: username}, nil
}
