package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Generator renders a Config as a ptinstall.lua file that ParseString
// reads back to the same values.
type Generator struct {
	indent string
	now    func() time.Time
}

// NewGenerator creates a new Lua config generator.
func NewGenerator() *Generator {
	return &Generator{indent: "  ", now: time.Now}
}

// Generate renders cfg as Lua. Empty optional fields are omitted.
func (g *Generator) Generate(cfg *Config) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("generate config: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("-- ptinstall configuration\n")
	buf.WriteString("-- Generated: ")
	buf.WriteString(g.now().UTC().Format(time.RFC3339))
	buf.WriteString("\n\n")

	buf.WriteString(luaGlobal + " = {\n")
	g.writeString(&buf, 1, luaFieldBaseDir, cfg.BaseDir)
	g.writeString(&buf, 1, luaFieldRepository, cfg.Repository)
	g.writeString(&buf, 1, luaFieldTempDir, cfg.TempDir)
	g.line(&buf, 1, fmt.Sprintf("%s = %d,", luaFieldMaxDepth, cfg.MaxDepth))
	g.writeString(&buf, 1, luaFieldLogLevel, cfg.LogLevel)
	buf.WriteString("\n")
	g.writeProduct(&buf, cfg.Product)
	buf.WriteString("}\n")

	return buf.String(), nil
}

func (g *Generator) writeProduct(buf *bytes.Buffer, p Product) {
	g.line(buf, 1, luaFieldProduct+" = {")
	g.writeString(buf, 2, luaFieldName, p.Name)
	g.writeString(buf, 2, luaFieldVersion, p.Version)
	g.writeString(buf, 2, luaFieldBinDir, p.BinDir)

	a := p.Artifact
	if a != (Artifact{}) {
		g.line(buf, 2, luaFieldArtifact+" = {")
		g.writeString(buf, 3, luaFieldGroupID, a.GroupID)
		g.writeString(buf, 3, luaFieldArtifactID, a.ArtifactID)
		g.writeString(buf, 3, luaFieldType, a.Type)
		g.writeString(buf, 3, luaFieldClassifier, a.Classifier)
		g.line(buf, 2, "},")
	}
	g.line(buf, 1, "},")
}

// writeString writes key = "value", skipping empty values.
func (g *Generator) writeString(buf *bytes.Buffer, depth int, key, value string) {
	if value == "" {
		return
	}
	g.line(buf, depth, key+" = "+g.quoteLuaString(value)+",")
}

func (g *Generator) line(buf *bytes.Buffer, depth int, s string) {
	buf.WriteString(strings.Repeat(g.indent, depth))
	buf.WriteString(s)
	buf.WriteString("\n")
}

// quoteLuaString quotes a string for Lua, handling special characters.
func (g *Generator) quoteLuaString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\") // backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}
