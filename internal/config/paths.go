package config

import (
	"os"
	"path/filepath"
)

const (
	// LocalConfigFile is the project config file looked up in the working directory.
	LocalConfigFile = "vuec.yaml"

	// EnvConfig names the environment variable holding the config path.
	EnvConfig = "VUEC_CONFIG"
)

// Paths contains standard filesystem paths for vuec.
type Paths struct {
	// ConfigFile is the path to the user config file (~/.vuec/config.yaml).
	ConfigFile string

	// HomeDir is the vuec home directory (~/.vuec).
	HomeDir string
}

// DefaultPaths returns the default paths for vuec.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	vuecHome := filepath.Join(homeDir, ".vuec")

	return &Paths{
		ConfigFile: filepath.Join(vuecHome, "config.yaml"),
		HomeDir:    vuecHome,
	}, nil
}

// DefaultConfigFile returns vuec.yaml in the working directory when it
// exists, else the user config file.
func DefaultConfigFile() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		local := filepath.Join(wd, LocalConfigFile)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

// FileExists reports whether path names an existing file.
func FileExists(path string) (bool, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
