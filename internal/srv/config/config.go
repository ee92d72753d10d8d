package config

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
)

const paramFilename = "param.yaml"

type ServerConfig struct {
	ConfigDir      string
	DebugMode      bool
	SimulationMode bool

	*ServerParam
}

func NewServerConfig(configDir string, debugMode bool, simulationMode bool) *ServerConfig {
	serverConfig := &ServerConfig{
		ConfigDir:      configDir,
		DebugMode:      debugMode,
		SimulationMode: simulationMode,
	}

	// Check Configuration folder
	_, err := os.Stat(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Printf("Creation of config folder: %s", configDir)
			err = os.Mkdir(configDir, 0770)
			if err != nil {
				logrus.Fatalf("Unable to create config folder: %v\n", err)
			}
		} else {
			logrus.Fatalf("Unable to access config folder: %s", configDir)
		}
	}

	// Open param file
	rawConfig, err := os.ReadFile(serverConfig.GetCompleteParamFilename())
	if err == nil {
		serverConfig.ServerParam, err = ParseServerParam(rawConfig)
		if err != nil {
			logrus.Fatalf("Unable to interpret config file: %v\n", err)
		}
	} else {
		// Create default param file
		logrus.Infof("Create default param file")
		serverConfig.ServerParam, err = ParseServerParam(ParamDefaultFile)
		if err != nil {
			logrus.Fatalf("Unable to interpret config file: %v\n", err)
		}

		serverConfig.SaveParam()
	}

	return serverConfig
}

// ParseServerParam reads a param file on top of the embedded defaults and
// checks the result.
func ParseServerParam(rawConfig []byte) (*ServerParam, error) {
	serverParam := &ServerParam{}
	if err := yaml.Unmarshal(ParamDefaultFile, serverParam); err != nil {
		return nil, fmt.Errorf("invalid default param file: %w", err)
	}
	if err := yaml.Unmarshal(rawConfig, serverParam); err != nil {
		return nil, err
	}
	if err := serverParam.Validate(); err != nil {
		return nil, err
	}
	return serverParam, nil
}

func (sp *ServerParam) Validate() error {
	if sp.Display.Width <= 0 || sp.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", sp.Display.Width, sp.Display.Height)
	}
	if _, err := sp.Theme.BackgroundColor(); err != nil {
		return fmt.Errorf("theme background: %w", err)
	}
	if _, err := sp.Theme.ForegroundColor(); err != nil {
		return fmt.Errorf("theme foreground: %w", err)
	}
	switch sp.Sync.Backend {
	case "websocket", "redis":
	default:
		return fmt.Errorf("unknown sync backend %q", sp.Sync.Backend)
	}
	if sp.Sync.Path == "" {
		sp.Sync.Path = WeatherPath
	}
	return nil
}

func (sc *ServerConfig) GetCompleteParamFilename() string {
	return filepath.Join(sc.ConfigDir, paramFilename)
}

func (sc *ServerConfig) SaveParam() {
	logrus.Debugf("Save param file: %s", sc.GetCompleteParamFilename())
	rawConfig, err := yaml.Marshal(*sc.ServerParam)
	if err != nil {
		logrus.Fatalf("Unable to serialize param file: %v\n", err)
	}
	err = os.WriteFile(sc.GetCompleteParamFilename(), rawConfig, 0660)
	if err != nil {
		logrus.Fatalf("Unable to save param file: %v\n", err)
	}
}
