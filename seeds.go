package inkwell

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/eringen/inkwell/sanitize"
)

const seedsFile = "embedded/seeds.yaml"

var seedMarkdown = goldmark.New()

// LoadSeeds returns the built-in posts with their Markdown bodies rendered to
// sanitized HTML.
func LoadSeeds() ([]Post, error) {
	data, err := EmbeddedAssets.ReadFile(seedsFile)
	if err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}
	return ParseSeeds(data)
}

// ParseSeeds decodes a YAML list of posts. Each content field is Markdown and is
// rendered then passed through the same sanitizer as user posts.
func ParseSeeds(data []byte) ([]Post, error) {
	var posts []Post
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse seeds: %w", err)
	}
	for i := range posts {
		var buf bytes.Buffer
		if err := seedMarkdown.Convert([]byte(posts[i].Content), &buf); err != nil {
			return nil, fmt.Errorf("render seed %d: %w", posts[i].ID, err)
		}
		content, err := sanitize.SanitizeHTML(buf.String())
		if err != nil {
			return nil, fmt.Errorf("sanitize seed %d: %w", posts[i].ID, err)
		}
		posts[i].Content = content
		if posts[i].Accent == "" {
			posts[i].Accent = DefaultAccent
		}
		if posts[i].ReadTime == "" {
			posts[i].ReadTime = EstimateReadTime(content)
		}
	}
	return posts, nil
}
