package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds environment-driven configuration values. Sensitive data
// never has defaults inside code and must come from the config file or the
// environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Database
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis for caching and token revocation
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// HTTP hardening
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Attendance engine
	Timezone             string
	GeofenceRadiusM      float64
	CheckinEarlyWindowMin int
	CheckinLateCutoffMin  int
	PointsPolicy         string
	SweepIntervalMin     int
	// Outbound LINE push gateway
	LineChannelToken string
}

var (
	cfg    AppConfig
	loaded bool
	loc    *time.Location
)

// Load loads the application configuration. It should be called once during
// boot. Precedence: config/config.json -> defaults -> environment overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	var err error
	loc, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Location returns the single canonical zone all wall-clock event components
// are evaluated in.
func Location() *time.Location {
	if !loaded {
		Load()
	}
	return loc
}

// loadJSONConfig reads grouped JSON config into out if the file is present.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // missing file is fine
	}
	defer f.Close()

	var raw map[string]map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	if app, ok := raw["app"]; ok {
		readString(app, "AppPort", &out.AppPort)
		readString(app, "JWTSecret", &out.JWTSecret)
		readInt(app, "RateLimitPerMinute", &out.RateLimitPerMinute)
		readStringSlice(app, "AllowedOrigins", &out.AllowedOrigins)
	}
	if g, ok := raw["gin"]; ok {
		readString(g, "Mode", &out.GinMode)
		readString(g, "LogPath", &out.GinPath)
	}
	if dbs, ok := raw["database"]; ok {
		readString(dbs, "DatabaseURI", &out.DatabaseURI)
		readString(dbs, "DBHost", &out.DBHost)
		readString(dbs, "DBPort", &out.DBPort)
		readString(dbs, "DBUser", &out.DBUser)
		readString(dbs, "DBPassword", &out.DBPassword)
		readString(dbs, "DBName", &out.DBName)
	}
	if rds, ok := raw["redis"]; ok {
		readString(rds, "RedisHost", &out.RedisHost)
		readInt(rds, "RedisPort", &out.RedisPort)
		readInt(rds, "RedisDB", &out.RedisDB)
		readString(rds, "RedisPassword", &out.RedisPassword)
	}
	if lg, ok := raw["log"]; ok {
		readString(lg, "Level", &out.LogLevel)
		readString(lg, "Path", &out.LogPath)
		readInt(lg, "MaxSizeMB", &out.LogMaxSizeMB)
		readInt(lg, "MaxBackups", &out.LogMaxBackups)
		readInt(lg, "MaxAgeDays", &out.LogMaxAgeDays)
		readBool(lg, "Compress", &out.LogCompress)
	}
	if att, ok := raw["attendance"]; ok {
		readString(att, "Timezone", &out.Timezone)
		readFloat(att, "GeofenceRadiusM", &out.GeofenceRadiusM)
		readInt(att, "EarlyWindowMin", &out.CheckinEarlyWindowMin)
		readInt(att, "LateCutoffMin", &out.CheckinLateCutoffMin)
		readString(att, "PointsPolicy", &out.PointsPolicy)
		readInt(att, "SweepIntervalMin", &out.SweepIntervalMin)
	}
	if ln, ok := raw["line"]; ok {
		readString(ln, "ChannelToken", &out.LineChannelToken)
	}
	return nil
}

func readString(m map[string]any, key string, dst *string) {
	if v, ok := m[key].(string); ok && v != "" {
		*dst = v
	}
}

func readInt(m map[string]any, key string, dst *int) {
	switch v := m[key].(type) {
	case float64:
		if v != 0 {
			*dst = int(v)
		}
	case int:
		if v != 0 {
			*dst = v
		}
	}
}

func readFloat(m map[string]any, key string, dst *float64) {
	if v, ok := m[key].(float64); ok && v != 0 {
		*dst = v
	}
}

func readBool(m map[string]any, key string, dst *bool) {
	if v, ok := m[key].(bool); ok {
		*dst = v
	}
}

func readStringSlice(m map[string]any, key string, dst *[]string) {
	arr, ok := m[key].([]any)
	if !ok {
		return
	}
	res := make([]string, 0, len(arr))
	for _, it := range arr {
		if s, ok := it.(string); ok {
			res = append(res, s)
		}
	}
	if len(res) > 0 {
		*dst = res
	}
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "volunteerhub"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.Timezone == "" {
		c.Timezone = "Asia/Bangkok"
	}
	if c.GeofenceRadiusM == 0 {
		c.GeofenceRadiusM = 80
	}
	if c.CheckinEarlyWindowMin == 0 {
		c.CheckinEarlyWindowMin = 15
	}
	if c.CheckinLateCutoffMin == 0 {
		c.CheckinLateCutoffMin = 15
	}
	if c.PointsPolicy == "" {
		c.PointsPolicy = "hourly"
	}
	if c.SweepIntervalMin == 0 {
		c.SweepIntervalMin = 30
	}
}

// applyEnvOverrides maps known environment variables onto config values.
func applyEnvOverrides(c *AppConfig) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			*dst = mustParseInt(key, v)
		}
	}

	setString("APP_PORT", &c.AppPort)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("GIN_MODE", &c.GinMode)
	setString("GIN_PATH", &c.GinPath)
	setString("DATABASE_URI", &c.DatabaseURI)
	setString("DB_HOST", &c.DBHost)
	setString("DB_PORT", &c.DBPort)
	setString("DB_USER", &c.DBUser)
	setString("DB_PASSWORD", &c.DBPassword)
	setString("DB_NAME", &c.DBName)
	setString("REDIS_HOST", &c.RedisHost)
	setInt("REDIS_PORT", &c.RedisPort)
	setInt("REDIS_DB", &c.RedisDB)
	setString("REDIS_PASSWORD", &c.RedisPassword)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_PATH", &c.LogPath)
	setInt("LOG_MAX_SIZE_MB", &c.LogMaxSizeMB)
	setInt("LOG_MAX_BACKUPS", &c.LogMaxBackups)
	setInt("LOG_MAX_AGE_DAYS", &c.LogMaxAgeDays)
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
	setInt("RATE_LIMIT_PER_MINUTE", &c.RateLimitPerMinute)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	setString("APP_TIMEZONE", &c.Timezone)
	if v := os.Getenv("GEOFENCE_RADIUS_M"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("invalid float value for GEOFENCE_RADIUS_M: %v", err)
		}
		c.GeofenceRadiusM = f
	}
	setInt("CHECKIN_EARLY_WINDOW_MIN", &c.CheckinEarlyWindowMin)
	setInt("CHECKIN_LATE_CUTOFF_MIN", &c.CheckinLateCutoffMin)
	setString("ATTENDANCE_POINTS_POLICY", &c.PointsPolicy)
	setInt("SWEEP_INTERVAL_MIN", &c.SweepIntervalMin)
	setString("LINE_CHANNEL_TOKEN", &c.LineChannelToken)
}

func mustParseInt(key, val string) int {
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value for %s: %v", key, err)
	}
	return i
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
