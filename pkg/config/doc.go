// Package config loads patch sets for patchrc.
//
//	            +-------------+
//	            |  Patch Set  |
//	            |  (Config)   |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   JSON   | |   HCL    |
//	|  Parser  | |  Parser  | |  Parser  |
//	+----------+ +----------+ +----------+
//
// 🎯 Purpose:
// - Reads a patch set file and picks a parser by extension
// - Validates globs and patch declarations
// - Builds patch registries, optionally filtered per target file
//
// 🔄 Flow:
// 1. Reads the file
// 2. Parses format-specific syntax
// 3. Validates (every patch is registered once to surface invalid specs early)
// 4. Hands out registries to the runner
//
// 📝 YAML example:
//
//	files:
//	  - lib/**/*.dart
//	exclude:
//	  - lib/generated/**
//	patches:
//	  - id: add-rendering-import
//	    literal:
//	      old: "import 'package:flutter/material.dart';\n\n"
//	      new: "import 'package:flutter/material.dart';\nimport 'package:flutter/rendering.dart';\n\n"
//	  - id: rounded-icons
//	    files: [lib/core/**]
//	    pattern:
//	      match: 'Icons\.(\w+)_outlined'
//	      template: 'Icons.${1}_rounded'
//
// 📝 HCL example (env.NAME exposes environment variables; write $${ for a literal ${):
//
//	files = ["lib/**/*.dart"]
//
//	patch "add-rendering-import" {
//	  literal {
//	    old = "import 'package:flutter/material.dart';\n\n"
//	    new = "import 'package:flutter/material.dart';\nimport 'package:flutter/rendering.dart';\n\n"
//	  }
//	}
package config
