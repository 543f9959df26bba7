/*
Package patch defines declarative source patches and the ordered registry
that holds them.

	+------------+      +------------+      +------------+
	|   Spec     | ---> |  Registry  | ---> |   Engine   |
	| (old->new) |      |  (ordered) |      |  (apply)   |
	+------------+      +------------+      +------------+

🎯 Purpose:
- Describes one old->new transformation as an immutable Spec
- Keeps specs in the order they were registered
- Rejects structurally invalid specs up front

🔄 Strategies:
1. LiteralBlock: an exact substring, replaced only when it occurs once
2. PatternSubstitution: a regular expression, every match is replaced

⚡ Invariants:
- A spec's match target is never empty
- Ids are unique within a registry
- Registration is append-only; a rejected spec leaves the registry intact
- Specs never change after construction and may be shared across goroutines

🔍 Example:

	reg := patch.NewRegistry()
	err := reg.Register(patch.Literal("add-import",
		"import 'package:flutter/material.dart';",
		"import 'package:flutter/material.dart';\nimport 'package:flutter/rendering.dart';",
	))
	if err != nil {
		return err
	}
	for spec := range reg.All() {
		fmt.Println(spec.ID)
	}
*/
package patch
