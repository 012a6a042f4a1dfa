package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/lab-utils/internal/calc"
	"github.com/BuzzLyutic/lab-utils/internal/fib"
)

func run(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got, nil
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		key  string
		want interface{}
	}{
		{name: "sum", args: []string{"sum", "2.5", "1.5"}, key: "result", want: 4.0},
		{name: "divide", args: []string{"divide", "9", "3"}, key: "result", want: 3.0},
		{name: "average", args: []string{"average", "1", "2", "3", "4", "5"}, key: "result", want: 3.0},
		{name: "average of nothing", args: []string{"average"}, key: "result", want: 0.0},
		{name: "average json", args: []string{"average", "--json", "[10, 20]"}, key: "result", want: 15.0},
		{name: "fib", args: []string{"fib", "10"}, key: "result", want: 55.0},
		{name: "fib naive", args: []string{"fib", "--naive", "10"}, key: "result", want: 55.0},
		{name: "echo", args: []string{"echo", "--", "hello;", "rm", "-rf", "/"}, key: "output", want: "hello; rm -rf /\n"},
		{name: "echo via shell", args: []string{"echo", "--shell", "$(id)"}, key: "output", want: "$(id)\n"},
		{name: "task", args: []string{"task"}, key: "completed", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[tt.key])
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	_, err := run(t, "divide", "1", "0")
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)

	_, err = run(t, "average", "--json", `"not a list"`)
	assert.ErrorIs(t, err, calc.ErrNotSequence)

	_, err = run(t, "fib", "--naive", "--", "-1")
	assert.ErrorIs(t, err, fib.ErrNegative)

	_, err = run(t, "sum", "one", "2")
	assert.Error(t, err)

	_, err = run(t, "sum", "1")
	assert.Error(t, err)

	_, err = run(t, "sum", "1e308", "1e308")
	assert.ErrorIs(t, err, calc.ErrNotFinite)
}

func TestCommands_Crawler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/404" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "<h1> Title 1 </h1><h1>Title 2</h1>")
	}))
	defer upstream.Close()

	got, err := run(t, "titles", upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Title 1", "Title 2"}, got["titles"])

	got, err = run(t, "download", "--delay", "0s", upstream.URL, upstream.URL+"/404")
	require.NoError(t, err)
	results := got["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "<h1> Title 1 </h1><h1>Title 2</h1>", results[0])
	assert.Nil(t, results[1])
}
