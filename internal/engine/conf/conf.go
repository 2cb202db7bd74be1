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

package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/cache"
	"github.com/go-stride/stride/pkg/database"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Log     log.Conf
	Http    httpx.Http
	MongoDB database.MongoDB
	Redis   cache.Redis
	Smtp    notify.Smtp
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads the TOML config and re-parses it on change.
func LoadConfigFile(confFile string) (AppConfig, error) {
	config := viper.New()
	config.SetConfigFile(confFile)
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, reloading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	return cfg, nil
}
