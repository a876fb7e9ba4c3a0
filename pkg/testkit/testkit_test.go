package testkit_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/souq/pkg/testkit"
)

func echo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get("Authorization") == "" && r.URL.Path == "/private" {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":401}`)) //nolint:errcheck
		return
	}
	var in map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&in)
	json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
		"status": 200,
		"data":   map[string]interface{}{"echo": in, "auth": r.Header.Get("Authorization"), "extra": true},
	})
}

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRunnerSubsetAndTokens(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b_echo.json", `{
		"name": "echo", "order": 1, "as": "admin",
		"requestMethod": "POST", "requestUrl": "/echo",
		"body": {"n": 1},
		"expectedCode": 200,
		"response": {"data": {"echo": {"n": 1}, "auth": "Bearer admin-token"}}
	}`)
	write(t, dir, "a_private.json", `{
		"name": "private needs auth", "order": 2,
		"requestUrl": "/private", "expectedCode": 401,
		"responseFileName": "private_res.json", "exact": true
	}`)
	write(t, dir, "private_res.json", `{"status": 401}`)

	var roles []string
	testkit.Runner{
		Handler: http.HandlerFunc(echo),
		Token: func(_ *testing.T, role string) string {
			roles = append(roles, role)
			return role + "-token"
		},
	}.RunDir(t, dir)

	assert.Equal(t, []string{"admin"}, roles)
}

func TestLoadDirOrdersAndSkipsPayloads(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "z.json", `{"name":"first","order":1,"requestUrl":"/","expectedCode":200}`)
	write(t, dir, "a.json", `{"name":"second","order":2,"requestUrl":"/","expectedCode":200}`)
	write(t, dir, "a_req.json", `{"ignored": true}`)

	got, err := testkit.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "GET", got[0].RequestMethod)
}

func TestLoadScenarioRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "bad.json", `{"name":"no url","expectedCode":200}`)
	_, err := testkit.LoadScenario(filepath.Join(dir, "bad.json"))
	assert.Error(t, err)
}

func TestSubset(t *testing.T) {
	var exp, act interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"b":[1,{"c":"x"}]}}`), &exp))
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"b":[1,{"c":"x","d":2}],"e":3},"f":4}`), &act))
	assert.Empty(t, testkit.Subset("", exp, act))

	require.NoError(t, json.Unmarshal([]byte(`{"a":{"b":[1]}}`), &act))
	assert.NotEmpty(t, testkit.Subset("", exp, act))
}
