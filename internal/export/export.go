// Package export writes note collections as JSON, YAML, Markdown or HTML.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marcus/notecard/internal/notes"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write encodes list in format to w. Order is preserved.
func Write(w io.Writer, list []notes.Note, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		var s string
		s, err = notes.EncodeIndent(list)
		data = []byte(s + "\n")
	case FormatYAML:
		data, err = yamlDoc(list)
	case FormatMarkdown:
		data = []byte(Markdown(list))
	case FormatHTML:
		data, err = htmlDoc(list)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// yamlNote is the YAML shape of a note; also used for frontmatter.
type yamlNote struct {
	ID       int64     `yaml:"id"`
	Title    string    `yaml:"title"`
	Tags     []string  `yaml:"tags,flow"`
	Pinned   bool      `yaml:"pinned"`
	Created  time.Time `yaml:"created"`
	Modified time.Time `yaml:"modified"`
	Content  string    `yaml:"content,omitempty"`
}

func toYAML(n notes.Note, withContent bool) yamlNote {
	y := yamlNote{
		ID:       n.ID,
		Title:    n.Title,
		Tags:     n.Tags,
		Pinned:   n.Pinned,
		Created:  n.Created.UTC(),
		Modified: n.Modified.UTC(),
	}
	if y.Tags == nil {
		y.Tags = []string{}
	}
	if withContent {
		y.Content = n.Content
	}
	return y
}

func yamlDoc(list []notes.Note) ([]byte, error) {
	docs := make([]yamlNote, len(list))
	for i, n := range list {
		docs[i] = toYAML(n, true)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown renders the collection as a single Markdown document.
func Markdown(list []notes.Note) string {
	var sb strings.Builder
	sb.WriteString("# Notes\n\n")
	if len(list) == 0 {
		sb.WriteString("_No notes._\n")
		return sb.String()
	}
	for i, n := range list {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString("## " + n.Title + "\n\n")
		sb.WriteString(metaLine(n) + "\n\n")
		sb.WriteString(strings.TrimRight(n.Content, "\n") + "\n")
	}
	return sb.String()
}

func metaLine(n notes.Note) string {
	parts := []string{"**Modified**: " + n.Modified.UTC().Format("2006-01-02 15:04")}
	if len(n.Tags) > 0 {
		tags := make([]string, len(n.Tags))
		for i, t := range n.Tags {
			tags[i] = "`" + t + "`"
		}
		parts = append(parts, "**Tags**: "+strings.Join(tags, " "))
	}
	if n.Pinned {
		parts = append(parts, "**Pinned**")
	}
	return strings.Join(parts, " | ")
}

// NoteFile renders one note as a Markdown file with YAML frontmatter.
func NoteFile(n notes.Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n, false)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(strings.TrimRight(n.Content, "\n") + "\n")
	return buf.Bytes(), nil
}

// WriteDir writes one Markdown file per note into dir and returns the paths.
func WriteDir(dir string, list []notes.Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(list))
	for _, n := range list {
		data, err := NoteFile(n)
		if err != nil {
			return paths, fmt.Errorf("export note %d: %w", n.ID, err)
		}
		path := filepath.Join(dir, Filename(n))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Filename returns "<id>-<sanitized title>.md".
func Filename(n notes.Note) string {
	return strconv.FormatInt(n.ID, 10) + "-" + sanitizeFilename(n.Title) + ".md"
}

// sanitizeFilename removes characters that are invalid in filenames.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
		"\n", " ",
		"\r", "",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	name = strings.Trim(name, " -")
	if name == "" {
		return "note"
	}
	if utf8.RuneCountInString(name) > 50 {
		name = string([]rune(name)[:50])
	}
	return name
}

var md = goldmark.New()

func htmlDoc(list []notes.Note) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(list)), &body); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString("<title>Notes</title>\n</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
