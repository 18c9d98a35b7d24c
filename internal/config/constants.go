package config

import "time"

// Lua schema field names and globals
const (
	luaGlobal          = "ptinstall"
	luaFieldBaseDir    = "base_dir"
	luaFieldRepository = "repository"
	luaFieldTempDir    = "temp_dir"
	luaFieldMaxDepth   = "max_depth"
	luaFieldLogLevel   = "log_level"
	luaFieldProduct    = "product"
	luaFieldName       = "name"
	luaFieldVersion    = "version"
	luaFieldBinDir     = "bin_dir"
	luaFieldArtifact   = "artifact"
	luaFieldGroupID    = "group_id"
	luaFieldArtifactID = "artifact_id"
	luaFieldType       = "type"
	luaFieldClassifier = "classifier"
)

// Defaults for the portable Git distribution.
const (
	DefaultFileName    = "ptinstall.lua"
	DefaultProductName = "PortableGit"
	DefaultVersion     = "2.37.0.1"
	DefaultBinDir      = "usr/bin"
	DefaultMaxDepth    = 4
	DefaultLogLevel    = "info"
)

// Limits
const (
	MaxConfigSize = 1 << 20
	MaxDepthLimit = 16
	ParseTimeout  = 5 * time.Second
)
