package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nexus/internal/app"
	"nexus/internal/client"
	"nexus/internal/config"
	"nexus/internal/errors"
	"nexus/internal/execution"
	"nexus/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out    string
	errOut string
	err    error
}

// runCLI executes the command tree against svc with a throwaway config.
func runCLI(t *testing.T, svc *testutils.FakeService, stdin string, args ...string) result {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	var out, errOut bytes.Buffer
	c := newCLI()
	c.in = strings.NewReader(stdin)
	c.out, c.errOut = &out, &errOut
	c.logOutput = io.Discard
	c.newService = func(*config.Config) (client.FileService, app.Canceler, error) {
		return svc, nil, nil
	}

	root := newRootCmd(c)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())

	return result{
		out:    testutils.StripANSI(out.String()),
		errOut: testutils.StripANSI(errOut.String()),
		err:    err,
	}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exit *exitError
	require.True(t, errors.As(err, &exit), "expected an exit status, got %v", err)
	return exit.code
}

func TestListCommand(t *testing.T) {
	svc := testutils.NewFakeService()
	svc.Files = []string{"main.go", "notes.txt", "script.py"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all", []string{"ls"}, []string{"main.go", "notes.txt", "script.py"}},
		{"code only", []string{"ls", "--code"}, []string{"main.go", "script.py"}},
		{"search", []string{"ls", "--search", "NOTE"}, []string{"notes.txt"}},
		{"search within code", []string{"ls", "--code", "-s", "main"}, []string{"main.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, svc, "", tt.args...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, strings.Fields(res.out))
		})
	}

	t.Run("long", func(t *testing.T) {
		res := runCLI(t, svc, "", "ls", "--long")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "NAME")
		assert.Contains(t, res.out, "⚡")
		assert.Contains(t, res.out, "3 shown, 3 files, 2 code")
	})

	t.Run("code and recent conflict", func(t *testing.T) {
		res := runCLI(t, svc, "", "ls", "--code", "--recent")
		assert.Error(t, res.err)
	})
}

func TestListReportsServerErrors(t *testing.T) {
	svc := testutils.NewFakeService()
	svc.Fail("files", errors.NewRequestError("unavailable", "/api/files", 503, errors.Transport, nil))

	res := runCLI(t, svc, "", "ls")
	assert.Equal(t, 1, exitCode(t, res.err))
	assert.Contains(t, res.errOut, app.MsgServerError)
	assert.Empty(t, res.out)
}

func TestCatCommand(t *testing.T) {
	svc := testutils.NewFakeService()
	svc.Contents["notes.txt"] = "remember the milk\n"

	res := runCLI(t, svc, "", "cat", "notes.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "remember the milk\n", res.out)
}

func TestCreateCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "hello.py")
	require.NoError(t, os.WriteFile(src, []byte("print('hi')"), 0644))

	t.Run("new file", func(t *testing.T) {
		svc := testutils.NewFakeService()
		res := runCLI(t, svc, "", "create", "hello.py", "--from", src, "--location", "src")
		require.NoError(t, res.err)
		require.Len(t, svc.Created, 1)
		assert.Equal(t, client.WriteRequest{Filename: "hello.py", Content: "print('hi')", Location: "src"}, svc.Created[0])
		assert.Contains(t, res.errOut, app.MsgCreated)
	})

	t.Run("content from stdin", func(t *testing.T) {
		svc := testutils.NewFakeService()
		res := runCLI(t, svc, "piped", "create", "notes.txt", "--from", "-")
		require.NoError(t, res.err)
		require.Len(t, svc.Created, 1)
		assert.Equal(t, "piped", svc.Created[0].Content)
		assert.Equal(t, ".", svc.Created[0].Location)
	})

	t.Run("existing file declined", func(t *testing.T) {
		svc := testutils.NewFakeService()
		svc.SetExists("hello.py", ".")
		res := runCLI(t, svc, "n\n", "create", "hello.py", "--from", src)
		require.NoError(t, res.err)
		assert.Empty(t, svc.Created)
		assert.Contains(t, res.errOut, `"hello.py" already exists in .`)
		assert.Contains(t, res.errOut, "Nothing was written")
	})

	t.Run("existing file confirmed", func(t *testing.T) {
		svc := testutils.NewFakeService()
		svc.SetExists("hello.py", ".")
		res := runCLI(t, svc, "y\n", "create", "hello.py", "--from", src)
		require.NoError(t, res.err)
		assert.Len(t, svc.Created, 1)
	})

	t.Run("force skips the prompt", func(t *testing.T) {
		svc := testutils.NewFakeService()
		svc.SetExists("hello.py", ".")
		res := runCLI(t, svc, "", "create", "hello.py", "--force")
		require.NoError(t, res.err)
		assert.Len(t, svc.Created, 1)
		assert.NotContains(t, res.errOut, "[y/N]")
	})

	t.Run("blank name", func(t *testing.T) {
		svc := testutils.NewFakeService()
		res := runCLI(t, svc, "", "create", "  ")
		require.NoError(t, res.err, "a rejected form is a warning")
		assert.Contains(t, res.errOut, app.MsgEnterFilename)
		assert.Equal(t, 0, svc.TotalCalls())
	})

	t.Run("missing source", func(t *testing.T) {
		svc := testutils.NewFakeService()
		res := runCLI(t, svc, "", "create", "x.txt", "--from", filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, res.err)
		assert.Equal(t, 0, svc.TotalCalls())
	})
}

func TestEditCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("new text"), 0644))

	svc := testutils.NewFakeService()
	svc.Contents["notes.txt"] = "old text"

	res := runCLI(t, svc, "", "edit", "notes.txt", "--from", src)
	require.NoError(t, res.err)
	require.Len(t, svc.Edited, 1)
	assert.Equal(t, "new text", svc.Edited[0].Content)
	assert.Contains(t, res.errOut, app.MsgSaved)

	res = runCLI(t, svc, "", "edit", "notes.txt", "--from", src)
	require.NoError(t, res.err)
	assert.Len(t, svc.Edited, 1, "unchanged content is not sent")
	assert.Contains(t, res.errOut, "Content unchanged")

	res = runCLI(t, svc, "", "edit", "notes.txt")
	assert.Error(t, res.err, "--from is required")
}

func TestRemoveCommand(t *testing.T) {
	svc := testutils.NewFakeService()
	svc.Files = []string{"a.txt", "b.txt"}

	res := runCLI(t, svc, "no\n", "rm", "a.txt")
	require.NoError(t, res.err)
	assert.Empty(t, svc.Deleted)
	assert.Contains(t, res.errOut, `Are you sure you want to delete "a.txt"?`)

	res = runCLI(t, svc, "", "rm", "a.txt", "--yes", "--location", "docs")
	require.NoError(t, res.err)
	require.Len(t, svc.Deleted, 1)
	assert.Equal(t, client.DeleteRequest{Filename: "a.txt", Location: "docs"}, svc.Deleted[0])
	assert.Contains(t, res.errOut, app.MsgDeleted)
}

func TestExecCommand(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := testutils.NewFakeService()
		code := 0
		svc.Result = client.ExecutionResult{Success: true, Output: "hello", ExitCode: &code}

		res := runCLI(t, svc, "", "exec", "main.c", "--action", "run")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "Execution completed successfully!")
		assert.Contains(t, res.out, "hello")
		require.Len(t, svc.Executed, 1)
		assert.Equal(t, client.ActionRun, svc.Executed[0].Action)
	})

	t.Run("failure mirrors the exit code", func(t *testing.T) {
		svc := testutils.NewFakeService()
		code := 3
		svc.Result = client.ExecutionResult{Success: false, Error: "boom", ExitCode: &code}

		res := runCLI(t, svc, "", "exec", "main.c")
		assert.Equal(t, 3, exitCode(t, res.err))
		assert.Contains(t, res.out, "Execution failed!")
		assert.Contains(t, res.out, "boom")
		assert.Equal(t, client.ActionBoth, svc.Executed[0].Action)
	})

	t.Run("transport error", func(t *testing.T) {
		svc := testutils.NewFakeService()
		svc.Fail("execute", errors.NewRequestError("down", "/api/execute", 502, errors.Transport, nil))

		res := runCLI(t, svc, "", "exec", "main.c")
		assert.Equal(t, 1, exitCode(t, res.err))
		assert.Contains(t, res.errOut, app.MsgServerError)
	})

	t.Run("rejections", func(t *testing.T) {
		svc := testutils.NewFakeService()
		assert.Error(t, runCLI(t, svc, "", "exec", "notes.txt").err)
		assert.Error(t, runCLI(t, svc, "", "exec", "main.c", "--action", "debug").err)
		assert.Equal(t, 0, svc.TotalCalls())
	})
}

func TestExitStatus(t *testing.T) {
	code := func(i int) *int { return &i }

	tests := []struct {
		name    string
		outcome execution.Outcome
		want    int
	}{
		{"success", execution.Outcome{Kind: execution.Succeeded}, 0},
		{"reported code", execution.Outcome{Kind: execution.Failed, Code: code(42)}, 42},
		{"reported zero", execution.Outcome{Kind: execution.Failed, Code: code(0)}, 1},
		{"missing code", execution.Outcome{Kind: execution.Failed}, 1},
		{"out of range", execution.Outcome{Kind: execution.Failed, Code: code(300)}, 1},
		{"transport", execution.Outcome{Kind: execution.TransportError}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitStatus(tt.outcome))
		})
	}
}

func TestBrowseCommand(t *testing.T) {
	svc := testutils.NewFakeService()
	svc.Dirs["src"] = []string{"app", "lib"}

	res := runCLI(t, svc, "", "browse", "src")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "📍 . / src")
	assert.Contains(t, res.out, "📁 app")
	assert.Contains(t, res.out, "📁 lib")
	assert.Equal(t, []string{"src"}, svc.Browsed)

	res = runCLI(t, svc, "", "browse")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "(no subdirectories)")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nexus", "config.yaml")
	svc := testutils.NewFakeService()

	run := func(args ...string) result {
		var out, errOut bytes.Buffer
		c := newCLI()
		c.out, c.errOut = &out, &errOut
		c.logOutput = io.Discard
		c.newService = func(*config.Config) (client.FileService, app.Canceler, error) {
			t.Fatal("config commands must not connect")
			return nil, nil, nil
		}
		root := newRootCmd(c)
		root.SetArgs(append([]string{"--config", path}, args...))
		err := root.ExecuteContext(context.Background())
		return result{out: testutils.StripANSI(out.String()), err: err}
	}

	res := run("config", "init")
	require.NoError(t, res.err)
	assert.FileExists(t, path)

	res = run("config", "init")
	assert.Error(t, res.err, "an existing file is kept")
	require.NoError(t, run("config", "init", "--force").err)

	res = run("config", "show", "--server", "http://files.example:9000")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "url: http://files.example:9000")
	assert.Contains(t, res.out, "view_mode: grid")

	res = run("config", "themes")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "* default")
	assert.Contains(t, res.out, "  monochrome")

	assert.Equal(t, 0, svc.TotalCalls())
}

func TestInvalidConfigFlag(t *testing.T) {
	res := runCLI(t, testutils.NewFakeService(), "", "ls", "--view", "mosaic")
	assert.Error(t, res.err)
}
