// Copyright 2025 Stride Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Uri         string
	DB          string
	Compressors []string
	PoolSize    uint64
}

// IMongoDB is the minimal surface the repositories need. Tests substitute
// an in-memory implementation.
type IMongoDB interface {
	GetCollection(name string) *mongo.Collection
}

// MongoClient wraps the MongoDB client and the selected database.
type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewMongoDB(cfg MongoDB, ctx context.Context) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	clientOption := options.Client().ApplyURI(cfg.Uri)
	if len(cfg.Compressors) > 0 {
		clientOption.SetCompressors(cfg.Compressors)
	}
	if cfg.PoolSize > 0 {
		clientOption.SetMaxPoolSize(cfg.PoolSize)
	}
	client, err := mongo.Connect(ctx, clientOption)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := client.Database(cfg.DB)

	return &MongoClient{
		Client: client,
		DB:     database,
	}, nil
}

// GetCollection returns a collection handle on the configured database.
func (mc *MongoClient) GetCollection(name string) *mongo.Collection {
	return mc.DB.Collection(name)
}

// Close disconnects the underlying client.
func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
