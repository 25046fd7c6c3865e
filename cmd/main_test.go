package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2025-09-26")
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.appHost)
	assert.Equal(t, "8080", cfg.appPort)
	assert.Equal(t, "info", cfg.logLevel)
	assert.Equal(t, driverFile, cfg.storeDriver)
	assert.Equal(t, "data/store.json", cfg.storeFilePath)
	assert.Equal(t, 6379, cfg.redisPort)
	assert.Equal(t, 5432, cfg.pgPort)
	assert.Equal(t, "data/images", cfg.imagesDir)
	assert.Empty(t, cfg.galleryDir)
	assert.Equal(t, "en", cfg.sortLocale)
	assert.Equal(t, "plain", cfg.pinHashing)
	assert.Equal(t, 86400, cfg.jwtExpSecond)
	assert.Nil(t, cfg.kafkaBrokers)
	assert.Equal(t, "note-events", cfg.kafkaTopic)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")
	os.Setenv("STORE_DRIVER", "redis")
	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_KEY_PREFIX", "test:")
	os.Setenv("PIN_HASHING", "bcrypt")
	os.Setenv("SORT_LOCALE", "de")
	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")
	os.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	defer resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.appPort)
	assert.Equal(t, "debug", cfg.logLevel)
	assert.Equal(t, driverRedis, cfg.storeDriver)
	assert.Equal(t, "redis.example.com", cfg.redisHost)
	assert.Equal(t, 6380, cfg.redisPort)
	assert.Equal(t, 2, cfg.redisDB)
	assert.Equal(t, "test:", cfg.redisKeyPrefix)
	assert.Equal(t, "bcrypt", cfg.pinHashing)
	assert.Equal(t, "de", cfg.sortLocale)
	assert.Equal(t, "supersecret", cfg.jwtSecretKey)
	assert.Equal(t, 300, cfg.jwtExpSecond)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.kafkaBrokers)
}

func TestParseConfig_FromFile(t *testing.T) {
	resetEnv()
	defer resetEnv()

	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=memory\nAPP_PORT=7070\n"), 0o600))

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, driverMemory, cfg.storeDriver)
	assert.Equal(t, "7070", cfg.appPort)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad redis port", "REDIS_PORT", "abc"},
		{"bad jwt exp", "JWT_EXP_SECOND", "soon"},
		{"unknown driver", "STORE_DRIVER", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv()
			defer resetEnv()
			os.Setenv(tt.key, tt.val)

			_, err := parseConfig("nonexistent.env")
			assert.Error(t, err)
		})
	}
}

func TestOpenStore_File(t *testing.T) {
	cfg := config{storeDriver: driverFile, storeFilePath: filepath.Join(t.TempDir(), "nested", "store.json")}

	store, closeStore, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.FileExists(t, cfg.storeFilePath)
}

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return fmt.Sprint(lis.Addr().(*net.TCPAddr).Port)
}

type apiClient struct {
	t     *testing.T
	base  string
	token string
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRun_NotesFlow(t *testing.T) {
	port := freePort(t)
	cfg := config{
		appHost:      "127.0.0.1",
		appPort:      port,
		logLevel:     "error",
		storeDriver:  driverMemory,
		imagesDir:    t.TempDir(),
		sortLocale:   "en",
		pinHashing:   "plain",
		jwtSecretKey: "testsecret",
		jwtExpSecond: 60,
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, cfg) }()

	c := &apiClient{t: t, base: "http://127.0.0.1:" + port}
	require.Eventually(t, func() bool {
		resp, err := http.Get(c.base + "/session")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	var tok struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/signup", map[string]string{"username": "alice", "pin": "1234"}, &tok))
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/signup", map[string]string{"username": "ALICE", "pin": "9"}, nil))
	c.token = tok.Token

	var note struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/notes", map[string]string{"body": "I saw a cat today"}, &note))
	assert.Equal(t, "Untitled", note.Title)

	var list struct {
		Notes []struct {
			ID string `json:"id"`
		} `json:"notes"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/notes?search=CAT", nil, &list))
	require.Len(t, list.Notes, 1)
	assert.Equal(t, note.ID, list.Notes[0].ID)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/notes/missing", map[string]string{"title": "x"}, nil))

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/notes", nil, nil), "token dies with the session")

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/login", map[string]string{"username": "Alice", "pin": "1234"}, &tok))
	assert.Equal(t, "alice", tok.Username)
	c.token = tok.Token
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/notes", nil, &list))
	assert.Len(t, list.Notes, 1)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not stop")
	}
}
