package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "busfleet"
const defaultRedisAddress = "localhost:6379"
const defaultTokenExpiry = "P7D"

// Config is loaded once at process start and passed into every component
// that needs it. Nothing re-reads the environment after startup.
type Config struct {
	MongoConnectionString string
	MongoDatabase         string

	RedisAddress  string
	RedisPassword string
	RedisDatabase int

	ElasticsearchAddress  string
	ElasticsearchUsername string
	ElasticsearchPassword string

	TokenSecret string
	TokenExpiry time.Duration

	OverpassMirrors []string
}

func Load() (*Config, error) {
	env := environmentSnapshot()

	config := &Config{
		MongoConnectionString: defaultMongoConnectionString,
		MongoDatabase:         defaultMongoDatabase,
		RedisAddress:          defaultRedisAddress,
	}

	if env["BUSFLEET_MONGODB_CONNECTION"] != "" {
		config.MongoConnectionString = env["BUSFLEET_MONGODB_CONNECTION"]
	}
	if env["BUSFLEET_MONGODB_DATABASE"] != "" {
		config.MongoDatabase = env["BUSFLEET_MONGODB_DATABASE"]
	}

	if env["BUSFLEET_REDIS_ADDRESS"] != "" {
		config.RedisAddress = env["BUSFLEET_REDIS_ADDRESS"]
	}
	config.RedisPassword = env["BUSFLEET_REDIS_PASSWORD"]
	if env["BUSFLEET_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["BUSFLEET_REDIS_DATABASE"])
		if err != nil {
			return nil, err
		}
		config.RedisDatabase = n
	}

	config.ElasticsearchAddress = env["BUSFLEET_ELASTICSEARCH_ADDRESS"]
	config.ElasticsearchUsername = env["BUSFLEET_ELASTICSEARCH_USERNAME"]
	config.ElasticsearchPassword = env["BUSFLEET_ELASTICSEARCH_PASSWORD"]

	config.TokenSecret = env["BUSFLEET_TOKEN_SECRET"]
	if config.TokenSecret == "" {
		return nil, errors.New("BUSFLEET_TOKEN_SECRET must be set")
	}

	tokenExpiry := defaultTokenExpiry
	if env["BUSFLEET_TOKEN_EXPIRY"] != "" {
		tokenExpiry = env["BUSFLEET_TOKEN_EXPIRY"]
	}
	expiry, err := parseISO8601Duration(tokenExpiry)
	if err != nil {
		return nil, err
	}
	config.TokenExpiry = expiry

	return config, nil
}

// environmentSnapshot captures the process environment as a map. Load reads
// from this one snapshot so every BUSFLEET_ variable is picked up at the same
// instant.
func environmentSnapshot() map[string]string {
	snapshot := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		snapshot[pair[0]] = pair[1]
	}

	return snapshot
}

// parseISO8601Duration converts durations like "P7D" or "PT12H" into a
// time.Duration. Year/month components are not supported as they have no
// fixed length.
func parseISO8601Duration(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	if parsed.Y != 0 || parsed.M != 0 {
		return 0, errors.New("year and month durations are not supported")
	}

	duration := time.Duration(parsed.W)*7*24*time.Hour +
		time.Duration(parsed.D)*24*time.Hour +
		time.Duration(parsed.TH)*time.Hour +
		time.Duration(parsed.TM)*time.Minute +
		time.Duration(parsed.TS)*time.Second

	return duration, nil
}
