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

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
	"github.com/go-stride/stride/pkg/http"
)

type UserService struct {
	userRepo repo.IUserRepository
}

func NewUserService(userRepo repo.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (us *UserService) GetUserInfo(c context.Context, userId string) (*model.UserInfo, error) {
	user, err := us.userRepo.GetUserById(c, userId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errors.New(http.UserNotExist.Msg)
		}
		return nil, err
	}
	info := user.ToUserInfo()
	return &info, nil
}

// ListByRole returns all users holding the given role, credentials
// stripped. Used to populate assignment pickers.
func (us *UserService) ListByRole(c context.Context, role model.Role) ([]model.UserInfo, error) {
	if !role.IsValid() {
		return nil, errors.New(http.InvalidRole.Msg)
	}
	users, err := us.userRepo.ListUsersByRole(c, role)
	if err != nil {
		return nil, err
	}
	infos := make([]model.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, user.ToUserInfo())
	}
	return infos, nil
}
