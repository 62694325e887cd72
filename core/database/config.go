package database

import "fmt"

// Config holds configuration for the database connection.
type Config struct {
	// URL is a full connection string (e.g. the Supabase postgres URL). Takes
	// precedence over the discrete fields below when set.
	URL string `mapstructure:"url" default:""`
	// Key is the Supabase database key, used as the password when URL carries none.
	Key string `mapstructure:"key" default:""`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (file path or :memory: for sqlite).
	Name string `mapstructure:"name" default:"postgres"`
	// Driver is the database driver (postgres, mysql, sqlite).
	Driver string `mapstructure:"driver" default:"postgres"`
	// SSLMode is passed to postgres when building a DSN from discrete fields.
	SSLMode string `mapstructure:"ssl_mode" default:"require"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxOpenConns caps the shared pool used by the image workers.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"20"`
}

// Validate reports configuration that makes a connection impossible.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
		if c.URL == "" && c.Host == "" {
			return fmt.Errorf("database: url or host is required for driver %s", c.Driver)
		}
	case DriverSQLite:
		if c.Name == "" {
			return fmt.Errorf("database: name is required for driver sqlite")
		}
	default:
		return fmt.Errorf("database: unsupported driver %q", c.Driver)
	}
	return nil
}
