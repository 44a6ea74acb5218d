package config

import (
	"encoding/json"
	"os"

	"github.com/swivl/traveldiary/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`
	SecretKey        string `json:"secret_key"`
	MaxDBConns       int    `json:"max_db_conns"`
}

// parseJson loads configuration from the JSON file named by the -c or -config
// flags. If neither flag is set, no file is loaded. An unreadable or invalid
// file panics: a config file that is named but broken is not recoverable.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.MaxDBConns > 0 {
		config.MaxDBConns = c.MaxDBConns
	}
}
