// Package config loads the installer configuration from a sandboxed Lua
// file, environment variables and built-in defaults.
//
// A ptinstall.lua file assigns a single global table:
//
//	ptinstall = {
//	  base_dir  = platform.is_windows and "C:/tools" or "/opt/tools",
//	  max_depth = 4,
//	  product = {
//	    name    = "PortableGit",
//	    version = "2.37.0.1",
//	    bin_dir = "usr/bin",
//	    artifact = {
//	      group_id    = "com.github.hazendaz.git",
//	      artifact_id = "git-for-windows",
//	      type        = "tar.gz",
//	      classifier  = "portable",
//	    },
//	  },
//	}
//
// Scripts run in a gopher-lua VM without os, io, debug or any code-loading
// functions. The read-only platform table from internal/platform is
// available for conditionals. Evaluation is bounded by ParseTimeout unless
// the caller's context sets a deadline, and files above MaxConfigSize are
// rejected.
//
// Fields a script leaves unset keep their Default values. Unknown fields are
// logged and ignored. Load applies PTINSTALL_* environment overrides on top
// of the file and validates the result:
//
//	cfg, err := config.Load(ctx, config.LoadOptions{
//	    Path:     "ptinstall.lua",
//	    Detector: platform.NewDetector(),
//	})
//
// Generator writes a Config back out as Lua for the init command.
package config
