package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvFile is the file LoadDotEnv reads by default.
const DotEnvFile = ".env"

// LoadDotEnv sets environment variables from the given files, or from
// DotEnvFile if none are given. Variables that are already set are kept.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DotEnvFile}
	}

	for _, path := range paths {
		err := godotenv.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}
