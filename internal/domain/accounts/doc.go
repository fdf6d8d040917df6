// Package accounts is the user-account record store backing
// authentication. Records live in a SQLite database via GORM; passwords
// are stored as bcrypt hashes and never leave the package.
package accounts
