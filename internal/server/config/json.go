package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/flagx"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Durations
// are strings understood by time.ParseDuration ("24h", "90m").
type JsonConfig struct {
	EndpointAddrHTTP      string `json:"endpoint_addr_http"`
	DatabaseDSN           string `json:"database_dsn"`
	SecretKey             string `json:"secret_key"`
	TokenValidityDuration string `json:"token_validity_duration"`
	Environment           string `json:"environment"`
	LogLevel              string `json:"log_level"`
	BcryptCost            int    `json:"bcrypt_cost"`
}

// parseJson loads the file named by -c/-config into config. Only fields
// present in the file override the current values. Unreadable files, invalid
// JSON and bad durations panic: the server must not start half-configured.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration != "" {
		d, err := time.ParseDuration(c.TokenValidityDuration)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
