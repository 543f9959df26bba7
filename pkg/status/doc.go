/*
Package status handles file storage and status reporting for patchrc.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Summary |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads target files and writes patched text back atomically
- Keeps an optional .bak copy before overwriting
- Formats progress lines and the end-of-run summary table

⚡ Key Responsibilities:
- File system operations rooted at a base directory
- Preserving the permissions of patched files
- Progress reporting
- Summary rendering

🔍 Example:

	mgr := status.New(cfg.Dir(), logger)

	text, err := mgr.ReadFile(ctx, "lib/core/router.dart")
	...
	err = mgr.WriteFileAtomic(ctx, "lib/core/router.dart", []byte(patched))

	status.RenderSummary(os.Stdout, rows)
*/
package status
