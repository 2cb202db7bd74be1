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

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/pkg/ctx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by repositories when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

type IUserRepository interface {
	CreateUser(c context.Context, user *model.User) error
	GetUserById(c context.Context, userId string) (*model.User, error)
	GetUserByEmail(c context.Context, email string) (*model.User, error)
	GetUserByUsername(c context.Context, username string) (*model.User, error)
	ListUsersByRole(c context.Context, role model.Role) ([]*model.User, error)
	SetToken(userId, aToken string, expire time.Duration) error
	DelToken(userId string) error
}

type UserRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewUserRepo(appCtx *ctx.Context) IUserRepository {
	return &UserRepo{
		ctx:        appCtx,
		collection: appCtx.Mongo.GetCollection(consts.CollectionUser),
	}
}

func (ur *UserRepo) CreateUser(c context.Context, user *model.User) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := ur.collection.InsertOne(c, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (ur *UserRepo) GetUserById(c context.Context, userId string) (*model.User, error) {
	return ur.findOne(c, bson.M{"_id": userId})
}

func (ur *UserRepo) GetUserByEmail(c context.Context, email string) (*model.User, error) {
	return ur.findOne(c, bson.M{"email": email})
}

func (ur *UserRepo) GetUserByUsername(c context.Context, username string) (*model.User, error) {
	return ur.findOne(c, bson.M{"username": username})
}

func (ur *UserRepo) findOne(c context.Context, filter bson.M) (*model.User, error) {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	var user model.User
	err := ur.collection.FindOne(c, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (ur *UserRepo) ListUsersByRole(c context.Context, role model.Role) ([]*model.User, error) {
	c, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()

	cursor, err := ur.collection.Find(c, bson.M{"role": role})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(c)

	var users []*model.User
	if err := cursor.All(c, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// SetToken marks the user as logged in. The authorization middleware checks
// this key, so deleting it invalidates every outstanding access token.
func (ur *UserRepo) SetToken(userId, aToken string, expire time.Duration) error {
	key := consts.UserTokenKey + userId
	return ur.ctx.Redis.Set(ur.ctx.GetCtx(), key, aToken, expire).Err()
}

func (ur *UserRepo) DelToken(userId string) error {
	key := consts.UserTokenKey + userId
	return ur.ctx.Redis.Del(ur.ctx.GetCtx(), key).Err()
}
