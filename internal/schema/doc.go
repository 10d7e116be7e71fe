// Package schema validates scenario files against an embedded CUE schema.
//
// The schema checks shape only: known actions and kinds, required fields
// per action and per assertion type, and no stray keys. Semantic checks
// that need the robot (pan point counts, directions) are left to the run
// so scenarios can assert on those failures with expect_error.
package schema
