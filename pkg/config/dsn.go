package config

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// defaultSSLMode applies when a URL carries no sslmode option. Production
// validation in LoadWithValidation rejects it outside development.
const defaultSSLMode = "disable"

// ParsedDatabaseURL is the component form of a Postgres connection URL.
// HRMS deployments may provide either HRMS_DATABASE_URL or the discrete
// host/port/user fields; this type converts between the two.
type ParsedDatabaseURL struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Options  map[string]string
}

// ParseDatabaseURL splits a postgres:// or postgresql:// URL into its
// components. Query parameters other than sslmode are preserved in
// Options (search_path, connect_timeout, ...).
func ParseDatabaseURL(rawURL string) (*ParsedDatabaseURL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
	default:
		return nil, fmt.Errorf("invalid database URL scheme: %s (expected postgres or postgresql)", u.Scheme)
	}

	parsed := &ParsedDatabaseURL{
		Host:     u.Hostname(),
		Port:     5432,
		Database: strings.TrimPrefix(u.Path, "/"),
		SSLMode:  defaultSSLMode,
		Options:  make(map[string]string),
	}

	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port in database URL: %w", err)
		}
		parsed.Port = port
	}

	if u.User != nil {
		parsed.User = u.User.Username()
		parsed.Password, _ = u.User.Password()
	}

	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		if key == "sslmode" {
			parsed.SSLMode = values[0]
			continue
		}
		parsed.Options[key] = values[0]
	}

	return parsed, nil
}

// BuildDatabaseURL assembles a postgres:// URL from discrete components.
// The password is escaped so credentials with @ or # survive the round trip.
func BuildDatabaseURL(host string, port int, user, password, database, sslMode string) string {
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		user, url.QueryEscape(password), host, port, database, sslMode,
	)
}

// ToDSN renders the components as a libpq keyword/value DSN, the form
// sqlx.Connect takes. Extra options are appended in sorted key order so
// the output is stable.
func (p *ParsedDatabaseURL) ToDSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)

	keys := make([]string, 0, len(p.Options))
	for key := range p.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		dsn += fmt.Sprintf(" %s=%s", key, p.Options[key])
	}

	return dsn
}

// ToURL renders the components back into URL form
func (p *ParsedDatabaseURL) ToURL() string {
	return BuildDatabaseURL(p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}
