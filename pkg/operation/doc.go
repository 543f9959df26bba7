/*
Package operation runs a patch set over target files.

	+-------------+
	|  Operation  |
	| (Patch Run) |
	+------+------+
	       |
	+------+------+
	|   Engine    |
	|   (Apply)   |
	+------+------+

🎯 Purpose:
- Discovers target files from the patch set's globs
- Applies the patch engine to each file
- Writes changed files back through the status package

🔄 Flow:
1. Expands globs, drops excluded files
2. Reads each file and builds its registry (per-patch file filters)
3. Applies the registry; unchanged files are never written
4. Writes, backs up or diffs changed files
5. Reports every outcome via logging

⚡ Key Responsibilities:
- File level orchestration around the pure engine
- Bounded parallelism across files
- Stopping new work once a file fails or the context is cancelled

📝 Design Philosophy:
Files never share state, so each one is an independent unit of work. Patch
outcomes (no match, ambiguous, invalid) are data returned in the Summary and
never errors; only I/O failures are errors.
*/
package operation
