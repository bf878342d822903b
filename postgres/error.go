package postgres

import "regexp"

var (
	// errConstraintViolation and errUniqViolation match error codes
	// originating from PostgreSQL itself.
	//
	// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
	errConstraintViolation = regexp.MustCompile(`SQLSTATE (23502)`)
	errUniqViolation       = regexp.MustCompile(`SQLSTATE (23505)`)
)
