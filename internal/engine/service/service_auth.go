/*
Copyright 2025 Stride Team

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/http/jwt"
	"github.com/go-stride/stride/pkg/id"
	"github.com/go-stride/stride/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo   repo.IUserRepository
	dispatcher *notify.Dispatcher
	auth       http.Auth
}

func NewAuthService(userRepo repo.IUserRepository, dispatcher *notify.Dispatcher, auth http.Auth) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		auth:       auth,
	}
}

// Register creates a user with a fixed role. Username and email must both
// be unused.
func (as *AuthService) Register(c context.Context, register *model.Register) error {
	if register.Username == "" || register.Password == "" {
		return errors.New(http.UsernameArePasswordIsRequired.Msg)
	}
	if !register.Role.IsValid() {
		return errors.New(http.InvalidRole.Msg)
	}

	if _, err := as.userRepo.GetUserByUsername(c, register.Username); err == nil {
		return errors.New(http.UserAlreadyExist.Msg)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if _, err := as.userRepo.GetUserByEmail(c, register.Email); err == nil {
		return errors.New(http.UserAlreadyExist.Msg)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(register.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorw("failed to hash password", "error", err)
		return err
	}

	user := &model.User{
		BaseModel: model.BaseModel{Id: id.GetUUIDWithoutDashes()},
		Username:  register.Username,
		Email:     register.Email,
		Password:  string(hash),
		Role:      register.Role,
	}
	return as.userRepo.CreateUser(c, user)
}

// Login verifies credentials, stores the session token and mails a login
// alert. The alert is fire-and-forget.
func (as *AuthService) Login(c context.Context, login *model.Login) (*model.LoginResp, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case login.Email != "":
		user, err = as.userRepo.GetUserByEmail(c, login.Email)
	case login.Username != "":
		user, err = as.userRepo.GetUserByUsername(c, login.Username)
	default:
		return nil, errors.New(http.UsernameArePasswordIsRequired.Msg)
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errors.New(http.UserNotExist.Msg)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)) != nil {
		return nil, errors.New(http.UserIncorrectPassword.Msg)
	}

	aToken, rToken, err := jwt.GenToken(user.Id, string(user.Role), []byte(as.auth.SecretKey), as.auth.AccessExpire, as.auth.RefreshExpire)
	if err != nil {
		log.Errorw("failed to generate token", "userId", user.Id, "error", err)
		return nil, err
	}

	if err := as.userRepo.SetToken(user.Id, aToken, as.auth.AccessExpire*time.Minute); err != nil {
		log.Errorw("failed to store session token", "userId", user.Id, "error", err)
		return nil, err
	}

	if user.Email != "" {
		as.dispatcher.Enqueue(notify.LoginAlertMail(user.Email, user.Username))
	}

	return &model.LoginResp{
		UserInfo: user.ToUserInfo(),
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
	}, nil
}

// Logout drops the session token. Outstanding access tokens stop passing
// the authorization middleware immediately.
func (as *AuthService) Logout(userId string) error {
	return as.userRepo.DelToken(userId)
}

// Refresh exchanges a valid refresh token for a new token pair and renews
// the session.
func (as *AuthService) Refresh(userId, role, rToken string) (map[string]string, error) {
	token, err := jwt.RefreshToken(&as.auth, userId, role, rToken)
	if err != nil {
		return nil, err
	}
	if err := as.userRepo.SetToken(userId, token["accessToken"], as.auth.AccessExpire*time.Minute); err != nil {
		return nil, err
	}
	return token, nil
}
