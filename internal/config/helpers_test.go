// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"testing"
)

// withCleanEnv clears the environment, points JOBDASH_CONFIG_DIR at a temp
// dir, sets extra vars, and returns a cleanup function that restores the
// original env. Use with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    dir := t.TempDir()
//	    t.Cleanup(withCleanEnv(t, dir, map[string]string{
//	        "LOG_LEVEL": "debug",
//	    }))
//	}
func withCleanEnv(t *testing.T, configDir string, extra map[string]string) func() {
	t.Helper()

	originalEnv := os.Environ()
	os.Clearenv()

	os.Setenv("JOBDASH_CONFIG_DIR", configDir)
	for key, value := range extra {
		os.Setenv(key, value)
	}

	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i := 0; i < len(env); i++ {
				if env[i] == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}
}
