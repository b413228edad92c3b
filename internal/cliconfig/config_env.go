package cliconfig

import "os"

// ApplyEnvConfig applies LOOPENGINE_* environment variables to the Config.
// Env values override file config but are overridden by explicitly set flags
// (checked via the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("role", os.Getenv("LOOPENGINE_ROLE"), &cfg.Role)
	s.setString("pause-file", os.Getenv("LOOPENGINE_PAUSE_FILE"), &cfg.PauseFile)
	s.setString("log-level", os.Getenv("LOOPENGINE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("interval", os.Getenv("LOOPENGINE_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}
	if err := s.setIntFromString("iterations", os.Getenv("LOOPENGINE_ITERATIONS"), &cfg.Iterations); err != nil {
		return err
	}

	return nil
}
