package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none) into the
// process environment. Variables already set are left alone and missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if exist, err := FileLoader.Exist(f); err != nil {
			return err
		} else if !exist {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
		Infof("load env from:%s", f)
	}
	return nil
}

// EnvString sets *dest to the value of key when it is set and not blank
func EnvString(key string, dest *string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dest = strings.TrimSpace(v)
	}
}

// EnvInt sets *dest to the integer value of key when it is set
func EnvInt(key string, dest *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dest = i
	return nil
}
