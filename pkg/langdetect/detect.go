// Package langdetect names the language of fenced code blocks in notes.
// The fence info string wins when present; otherwise the block body is
// classified with go-enry, falling back to "text".
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Languages that show up in session notes, as fence tags.
const (
	langBash       = "bash"
	langPowerShell = "powershell"
	langPython     = "python"
	langGo         = "go"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langHTTP       = "http"
)

// classifierCandidates bounds the enry classifier to languages that
// plausibly appear in recon notes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Shell", "PowerShell", "Python", "Go", "Ruby", "Perl", "PHP",
	"JavaScript", "C", "SQL", "JSON", "YAML", "HTML", "XML", "Markdown",
}

// ForBlock returns the fence tag for a code block with the given info
// string and body.
func ForBlock(info string, body []byte) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		return FromInfo(fields[0])
	}
	return Detect(body)
}

// FromInfo normalizes a fence info word through enry's alias table.
// Unknown words are returned lowercased.
func FromInfo(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return Text
	}
	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang)
	}
	return word
}

// Detect guesses the language of content.
// Returns "text" when detection fails or confidence is low.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return normalize(lang)
	}

	for _, detect := range patternDetectors {
		if lang := detect(trimmed); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// patternDetectors are checked in order before the classifier.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patternDetectors = []func([]byte) string{
	detectHTTP,
	detectPowerShell,
	detectShellPrompt,
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectSQL,
	detectYAML,
}

// detectHTTP matches raw request or response captures.
func detectHTTP(trimmed []byte) string {
	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	if bytes.HasPrefix(firstLine, []byte("HTTP/")) {
		return langHTTP
	}
	for _, method := range []string{"GET ", "POST ", "PUT ", "DELETE ", "HEAD ", "OPTIONS ", "PATCH "} {
		if bytes.HasPrefix(firstLine, []byte(method)) && bytes.Contains(firstLine, []byte(" HTTP/")) {
			return langHTTP
		}
	}
	return ""
}

func detectPowerShell(trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	if bytes.HasPrefix(trimmed, []byte("PS ")) ||
		bytes.Contains(lower, []byte("invoke-webrequest")) ||
		bytes.Contains(lower, []byte("get-childitem")) ||
		bytes.Contains(lower, []byte("-executionpolicy")) {
		return langPowerShell
	}
	return ""
}

// detectShellPrompt matches pasted terminal sessions and common tooling.
func detectShellPrompt(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("$ ")) || bytes.HasPrefix(trimmed, []byte("# ")) {
		return langBash
	}
	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	command, _, _ := bytes.Cut(firstLine, []byte(" "))
	switch string(command) {
	case "nmap", "curl", "wget", "nc", "ssh", "sudo", "echo", "export", "cd", "ls", "cat", "grep",
		"gobuster", "ffuf", "hydra", "sqlmap", "smbclient", "enum4linux", "nikto":
		return langBash
	}
	return ""
}

func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(trimmed []byte) string {
	content := string(trimmed)
	if strings.Contains(content, "def ") && strings.Contains(content, "):") {
		return langPython
	}
	if strings.Contains(content, "__name__") || strings.HasPrefix(content, "import ") ||
		(strings.HasPrefix(content, "from ") && strings.Contains(content, " import ")) {
		return langPython
	}
	return ""
}

func detectHTML(trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	if bytes.Contains(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body")) {
		return langHTML
	}
	return ""
}

func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectSQL(trimmed []byte) string {
	upper := strings.ToUpper(string(trimmed))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "UNION "} {
		if strings.HasPrefix(upper, keyword) {
			return langSQL
		}
	}
	return ""
}

// detectYAML counts "key: value" and "- item" lines.
func detectYAML(trimmed []byte) string {
	count := 0
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"") {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "PowerShell":
		return langPowerShell
	default:
		return strings.ToLower(lang)
	}
}
