package config

import (
	"errors"
	"io/fs"

	"github.com/imgajeed76/mojifix/internal/util"
	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory at startup.
const DotEnvFile = ".env"

// LoadDotEnv loads MOJIFIX_* variables from .env files. Variables already set
// in the environment win. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DotEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				util.Logger().Debug("no env file", "file", f)
				continue
			}
			return err
		}
		util.Logger().Debug("loaded env file", "file", f)
	}
	return nil
}
