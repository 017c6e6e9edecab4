package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SeedAccount struct {
	Name           string `yaml:"name"`
	InitialBalance string `yaml:"initial_balance"`
}

type SeedUser struct {
	Name     string        `yaml:"name"`
	Email    string        `yaml:"email"`
	Accounts []SeedAccount `yaml:"accounts"`
}

type SeedConfig struct {
	Users []SeedUser `yaml:"users"`
}

// LoadSeedConfig reads the YAML seed file used by the setup command to
// create an initial set of users and accounts.
func LoadSeedConfig(seedFile string) (*SeedConfig, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedFile, err)
	}

	for i, user := range config.Users {
		if user.Name == "" {
			return nil, fmt.Errorf("user at index %d missing name", i)
		}
		if user.Email == "" {
			return nil, fmt.Errorf("user at index %d missing email", i)
		}
		for j, account := range user.Accounts {
			if account.Name == "" {
				return nil, fmt.Errorf("account at index %d for user %s missing name", j, user.Email)
			}
		}
	}

	return &config, nil
}
