// Package config provides configuration management for the imuws commands.
//
// Configuration is loaded from environment variables using the env package.
// Every value has a default, so the commands run without any environment.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("uploading as %s to %s\n", cfg.Client.IMUID, cfg.Client.Host)
package config
