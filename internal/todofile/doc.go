// Package todofile converts a task list to and from the TODO.md text format.
//
// The canonical form written by Serialize is:
//
//	# TODO — demo v1.2.3
//
//	@created: 2026-02-20
//	@modified: 2026-02-21
//
//	## Tasks
//
//	- [ ] keep parser compatibility (high) #parser
//	      @created 2026-02-20 10:00
//	      @created_version 1.2.0
//
//	## Completed
//
//	- [x] ship 1.2.3
//	      @created 2026-02-19 09:30
//	      @completed 2026-02-21 17:05
//	      @completed_commit 4f2a9c1
//
// Open tasks are ordered by creation time and completed tasks by completion
// time. Tasks with equal timestamps keep their order in the list. The format
// stores dates to the day and timestamps to the minute; anything finer is
// lost on a round trip. The header holds a non-empty project name and a
// plain MAJOR.MINOR.PATCH version; a prerelease project version or an empty
// name serializes to a header Deserialize rejects.
//
// Deserialize is more forgiving than Serialize: the header may use a plain
// hyphen instead of an em-dash, the @created/@modified lines may come in any
// order with blank lines in between, and a "(medium)" token is accepted.
// Words of a task description are re-joined with single spaces.
package todofile
