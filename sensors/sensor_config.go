package sensors

import (
	"fmt"
	"strings"
)

type LaunchSensorConfig struct {
	GUI             bool     `json:"gui"`
	Model           string   `json:"model"`
	RvizConfig      string   `json:"rvizconfig"`
	LaunchFile      string   `json:"launch_file"`
	PackagePrefixes []string `json:"package_prefixes"`
	PrimaryUri      string   `json:"primary_uri"`
}

type JointStateSensorConfig struct {
	PrimaryUri string `json:"primary_uri"`
	Topic      string `json:"topic"`
}

func (cfg *LaunchSensorConfig) Validate(path string) ([]string, error) {
	// PrimaryUri is optional; without it the plan is only reported
	for _, p := range cfg.PackagePrefixes {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf(`empty entry in "package_prefixes" for sensor %q`, path)
		}
	}
	if cfg.LaunchFile != "" && !strings.HasSuffix(cfg.LaunchFile, ".hcl") {
		return nil, fmt.Errorf(`expected "launch_file" to be an .hcl file for sensor %q`, path)
	}
	return nil, nil
}

func (cfg *JointStateSensorConfig) Validate(path string) ([]string, error) {
	// Topic defaults to /joint_states when empty
	if cfg.PrimaryUri == "" {
		return nil, fmt.Errorf(`expected "PrimaryUri" attribute for sensor %q`, path)
	}

	return nil, nil
}
