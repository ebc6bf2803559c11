// Package store persists analysis runs and their highlight clips in a
// SQLite database under the configured store directory.
//
// A file lock guards the database against concurrent writers from multiple
// processes; within one process the *sql.DB serializes access.
package store
