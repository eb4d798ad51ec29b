// Package config provides configuration management for autoartists.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides (optionally read from a .env file)
//   - Conversion to extractor options and tag configuration
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// overwrite: true, auto: false
//	// separators: "␟", ", ", " & ", " and ", " + ", " with ", "/", ";"
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // malformed file; a missing file yields defaults
//	}
//
// # Environment
//
// ApplyEnv reads .env (if present) and then overrides settings from
// AUTOARTISTS_AUTO, AUTOARTISTS_OVERWRITE, AUTOARTISTS_LIBRARY,
// AUTOARTISTS_SINGLE_ARTISTS ("|"-separated) and AUTOARTISTS_LOG_LEVEL.
//
// # Example file
//
//	{
//	  "auto": true,
//	  "overwrite": false,
//	  "single_artists": ["Earth, Wind & Fire", "AC/DC"],
//	  "library_path": "/music",
//	  "log": {"level": "debug"}
//	}
package config
