package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host        string
	Port        string
	CORSOrigins []string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Schema qualifies every table the service reads.
	Schema    string
	GraphName string

	MaxOpenConns int
	MaxIdleConns int
}

type GenAI struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	EmbedModel string
	Dimension  int
	Timeout    time.Duration

	// RandomFallback substitutes a random query vector when embedding fails.
	RandomFallback bool
}

type Qdrant struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

func (q Qdrant) Enabled() bool {
	return q.Host != ""
}

type S3 struct {
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	PresignTTL time.Duration
}

func (s S3) Enabled() bool {
	return s.AccessKey != ""
}

type Log struct {
	Level string
}

type Config struct {
	HTTP     HTTPServer
	Postgres Postgres
	GenAI    GenAI
	Qdrant   Qdrant
	S3       S3
	Log      Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	return &Config{
		HTTP:     *newHTTP(),
		Postgres: *newPostgres(),
		GenAI:    *newGenAI(),
		Qdrant:   *newQdrant(),
		S3:       *newS3(),
		Log:      Log{Level: getenv("LOG_LEVEL", "info")},
	}
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:        getenv("HTTP_PORT", "8000"),
		Host:        getenv("HTTP_HOST", "0.0.0.0"),
		CORSOrigins: splitList(getenv("HTTP_CORS_ORIGINS", "*")),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:         getenv("DB_HOST", "localhost"),
		Port:         getenv("DB_PORT", "5432"),
		User:         getenv("DB_USER", "admin"),
		Password:     getsecret("DB_PASSWORD", "shared"),
		DBName:       getenv("DB_NAME", "movies"),
		SSLMode:      getenv("DB_SSLMODE", "disable"),
		Schema:       getenv("DB_SCHEMA", "public"),
		GraphName:    getenv("DB_GRAPH_NAME", "movie_graph"),
		MaxOpenConns: getint("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns: getint("DB_MAX_IDLE_CONNS", 5),
	}
}

func newGenAI() *GenAI {
	return &GenAI{
		BaseURL:        getenv("GENAI_BASE_URL", "http://localhost:11434/v1"),
		APIKey:         getsecret("GENAI_API_KEY", ""),
		ChatModel:      getenv("GENAI_CHAT_MODEL", "cohere.command-r-plus"),
		EmbedModel:     getenv("GENAI_EMBED_MODEL", "cohere.embed-multilingual-v3.0"),
		Dimension:      getint("GENAI_EMBED_DIMENSION", 1024),
		Timeout:        getduration("GENAI_TIMEOUT", 240*time.Second),
		RandomFallback: getbool("GENAI_RANDOM_FALLBACK", true),
	}
}

func newQdrant() *Qdrant {
	return &Qdrant{
		Host:       getenv("QDRANT_HOST", ""),
		Port:       getint("QDRANT_PORT", 6334),
		APIKey:     getsecret("QDRANT_API_KEY", ""),
		UseTLS:     getbool("QDRANT_TLS", false),
		Collection: getenv("QDRANT_COLLECTION", "movies"),
	}
}

func newS3() *S3 {
	return &S3{
		Region:     getenv("AWS_REGION", "us-east-1"),
		Endpoint:   getenv("S3_ENDPOINT", ""),
		AccessKey:  getsecret("AWS_ACCESS_KEY_ID", ""),
		SecretKey:  getsecret("AWS_SECRET_ACCESS_KEY", ""),
		PresignTTL: getduration("S3_PRESIGN_TTL", 15*time.Minute),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s = ***\n", logtag, key)
	return val
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("%s %s is not an integer. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	return v
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s is not a bool. Using default value %t\n", logtag, key, defaultValue)
		return defaultValue
	}
	return v
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s is not a duration. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
