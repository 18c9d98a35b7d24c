package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/portable-tools/ptinstall/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser evaluates Lua configuration files in a sandbox with the platform
// table available.
type Parser struct {
	detector platform.Detector
	log      Logger
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the platform table undefined.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector, log: defaultLogger()}
}

// WithLogger sets a custom logger for the parser.
// Returns the parser for method chaining.
func (p *Parser) WithLogger(log Logger) *Parser {
	if log == nil {
		log = defaultLogger()
	}
	p.log = log
	return p
}

// ParseFile parses and validates the Lua config at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	code, err := p.readFile(path)
	if err != nil {
		return nil, err
	}
	return p.ParseString(ctx, code)
}

func (p *Parser) readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigSize+1))
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}
	if len(data) > MaxConfigSize {
		return "", &ParseError{
			Message: "config file too large",
			Detail:  fmt.Sprintf("%s exceeds %d bytes", path, MaxConfigSize),
		}
	}

	p.log.Debug("parsing config", "path", path, "bytes", len(data))
	return string(data), nil
}

// ParseString parses and validates a Lua config from a string. Fields the
// script leaves unset keep the values of Default. Evaluation is bounded by
// ParseTimeout unless ctx already carries a deadline.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	cfg, err := p.evaluate(ctx, luaCode, Default())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// evaluate runs luaCode and overlays its ptinstall table onto cfg.
func (p *Parser) evaluate(ctx context.Context, luaCode string, cfg *Config) (*Config, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ParseTimeout)
		defer cancel()
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, &ParseError{Message: "config evaluation timed out", Detail: err.Error()}
		}
		return nil, &ParseError{Message: "Lua syntax error", Detail: err.Error()}
	}

	if err := p.extractConfig(L, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig overlays the global ptinstall table onto cfg.
func (p *Parser) extractConfig(L *lua.LState, cfg *Config) error {
	global := L.GetGlobal(luaGlobal)
	table, ok := global.(*lua.LTable)
	if !ok {
		return &ParseError{
			Message: "missing or invalid '" + luaGlobal + "' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	p.warnUnknown(table, "", luaFieldBaseDir, luaFieldRepository, luaFieldTempDir, luaFieldMaxDepth, luaFieldLogLevel, luaFieldProduct)

	fields := []struct {
		name string
		dst  *string
	}{
		{luaFieldBaseDir, &cfg.BaseDir},
		{luaFieldRepository, &cfg.Repository},
		{luaFieldTempDir, &cfg.TempDir},
		{luaFieldLogLevel, &cfg.LogLevel},
	}
	for _, f := range fields {
		if err := stringField(table, f.name, f.name, f.dst); err != nil {
			return err
		}
	}
	if err := intField(table, luaFieldMaxDepth, luaFieldMaxDepth, &cfg.MaxDepth); err != nil {
		return err
	}

	switch v := table.RawGetString(luaFieldProduct).(type) {
	case *lua.LTable:
		if err := p.extractProduct(v, &cfg.Product); err != nil {
			return err
		}
	case *lua.LNilType:
	default:
		return &ValidationError{Field: luaFieldProduct, Message: "must be a table"}
	}
	return nil
}

func (p *Parser) extractProduct(table *lua.LTable, product *Product) error {
	p.warnUnknown(table, "product.", luaFieldName, luaFieldVersion, luaFieldBinDir, luaFieldArtifact)

	fields := []struct {
		name string
		dst  *string
	}{
		{luaFieldName, &product.Name},
		{luaFieldVersion, &product.Version},
		{luaFieldBinDir, &product.BinDir},
	}
	for _, f := range fields {
		if err := stringField(table, f.name, "product."+f.name, f.dst); err != nil {
			return err
		}
	}

	switch v := table.RawGetString(luaFieldArtifact).(type) {
	case *lua.LTable:
		p.warnUnknown(v, "product.artifact.", luaFieldGroupID, luaFieldArtifactID, luaFieldType, luaFieldClassifier)

		artifactFields := []struct {
			name string
			dst  *string
		}{
			{luaFieldGroupID, &product.Artifact.GroupID},
			{luaFieldArtifactID, &product.Artifact.ArtifactID},
			{luaFieldType, &product.Artifact.Type},
			{luaFieldClassifier, &product.Artifact.Classifier},
		}
		for _, f := range artifactFields {
			if err := stringField(v, f.name, "product.artifact."+f.name, f.dst); err != nil {
				return err
			}
		}
	case *lua.LNilType:
	default:
		return &ValidationError{Field: "product.artifact", Message: "must be a table"}
	}

	return nil
}

// stringField copies table[key] into dst when set. nil leaves dst alone.
func stringField(table *lua.LTable, key, field string, dst *string) error {
	switch v := table.RawGetString(key).(type) {
	case lua.LString:
		*dst = string(v)
	case *lua.LNilType:
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be a string, got %s", v.Type())}
	}
	return nil
}

func intField(table *lua.LTable, key, field string, dst *int) error {
	switch v := table.RawGetString(key).(type) {
	case lua.LNumber:
		n := int(v)
		if lua.LNumber(n) != v {
			return &ValidationError{Field: field, Message: fmt.Sprintf("must be an integer, got %v", v)}
		}
		*dst = n
	case *lua.LNilType:
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be a number, got %s", v.Type())}
	}
	return nil
}

// warnUnknown logs keys of table that are not in known.
func (p *Parser) warnUnknown(table *lua.LTable, prefix string, known ...string) {
	table.ForEach(func(key, _ lua.LValue) {
		name := key.String()
		for _, k := range known {
			if k == name {
				return
			}
		}
		p.log.Warn("ignoring unknown config key", "field", prefix+name)
	})
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
